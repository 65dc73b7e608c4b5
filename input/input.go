// The input package tracks keyboard state across frames, like keys
// held down and keys pressed or released this frame.
//
// Surfaces feed it with HandleKey while pumping their events, and the
// main loop calls FrameStart once per frame before polling, so that the
// 'this frame' states only last one frame.
package input

// Key is a platform keycode. With SDL surfaces these are sdl.Keycode values.
type Key int32

type keyState struct {
	Key                 Key
	IsDown              bool
	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

var (
	keyMap = make(map[Key]keyState)
)

func FrameStart() {

	for k, v := range keyMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		keyMap[k] = v
	}
}

func ClearKeyboardState() {
	clear(keyMap)
}

// HandleKey records a key event. Repeats only keep the key down and never
// count as a new press or release.
func HandleKey(k Key, pressed, repeat bool) {

	ks, ok := keyMap[k]
	if !ok {
		ks = keyState{Key: k}
	}

	ks.IsDown = pressed
	ks.IsPressedThisFrame = ks.IsPressedThisFrame || (pressed && !repeat)
	ks.IsReleasedThisFrame = ks.IsReleasedThisFrame || (!pressed && !repeat)

	keyMap[k] = ks
}

func KeyClicked(k Key) bool {
	return keyMap[k].IsPressedThisFrame
}

func KeyReleased(k Key) bool {
	return keyMap[k].IsReleasedThisFrame
}

func KeyDown(k Key) bool {
	return keyMap[k].IsDown
}

func KeyUp(k Key) bool {
	return !keyMap[k].IsDown
}
