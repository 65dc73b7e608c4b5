package input

import "testing"

const (
	keyA Key = 'a'
	keyB Key = 'b'
)

func TestKeyPressRelease(t *testing.T) {

	ClearKeyboardState()

	if KeyDown(keyA) || !KeyUp(keyA) || KeyClicked(keyA) {
		t.Fatal("unknown key should be up and not clicked")
	}

	FrameStart()
	HandleKey(keyA, true, false)
	if !KeyDown(keyA) || !KeyClicked(keyA) {
		t.Error("pressed key should be down and clicked this frame")
	}

	FrameStart()
	if !KeyDown(keyA) || KeyClicked(keyA) {
		t.Error("held key should stay down but not be clicked next frame")
	}

	HandleKey(keyA, true, true)
	if KeyClicked(keyA) {
		t.Error("repeat should not count as a click")
	}

	FrameStart()
	HandleKey(keyA, false, false)
	if KeyDown(keyA) || !KeyReleased(keyA) {
		t.Error("released key should be up and released this frame")
	}

	FrameStart()
	if KeyReleased(keyA) {
		t.Error("release should only last one frame")
	}
}

func TestClickAndReleaseSameFrame(t *testing.T) {

	ClearKeyboardState()
	FrameStart()

	HandleKey(keyB, true, false)
	HandleKey(keyB, false, false)

	if !KeyClicked(keyB) || !KeyReleased(keyB) {
		t.Error("a tap within one frame should report both click and release")
	}
	if KeyDown(keyB) {
		t.Error("key should end the frame up")
	}
}
