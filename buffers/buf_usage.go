package buffers

import (
	"fmt"
	"strings"

	"github.com/bloeys/libgraphics/assert"
	"github.com/bloeys/libgraphics/backend"
)

type BufUsage int

// Full docs for buffer usage can be found here: https://registry.khronos.org/OpenGL-Refpages/gl4/html/glBufferData.xhtml
const (
	BufUsage_Unknown BufUsage = iota

	//Buffer is set only once and used many times
	BufUsage_Static_Draw
	//Buffer is changed a lot and used many times
	BufUsage_Dynamic_Draw
	//Buffer is set only once and used by the GPU at most a few times
	BufUsage_Stream_Draw
)

func (b BufUsage) ToGL() uint32 {
	switch b {
	case BufUsage_Static_Draw:
		return backend.StaticDraw
	case BufUsage_Dynamic_Draw:
		return backend.DynamicDraw
	case BufUsage_Stream_Draw:
		return backend.StreamDraw
	}

	assert.T(false, "Unexpected BufUsage value '%v'", b)
	return 0
}

func (b BufUsage) String() string {
	switch b {
	case BufUsage_Static_Draw:
		return "static"
	case BufUsage_Dynamic_Draw:
		return "dynamic"
	case BufUsage_Stream_Draw:
		return "stream"
	default:
		return "unknown"
	}
}

// ParseBufUsage accepts 'static', 'dynamic' or 'stream' (case insensitive).
// An empty string means static.
func ParseBufUsage(s string) (BufUsage, error) {

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "static":
		return BufUsage_Static_Draw, nil
	case "dynamic":
		return BufUsage_Dynamic_Draw, nil
	case "stream":
		return BufUsage_Stream_Draw, nil
	}

	return BufUsage_Unknown, fmt.Errorf("unknown buffer usage '%s'. Must be one of 'static', 'dynamic' or 'stream'", s)
}
