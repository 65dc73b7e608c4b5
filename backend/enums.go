package backend

// Enum values passed through Functions. They match the OpenGL values so a
// real loader can forward them untouched.
const (
	False uint32 = 0
	True  uint32 = 1

	Triangles uint32 = 0x0004
	Quads     uint32 = 0x0007

	UnsignedByte uint32 = 0x1401
	Float        uint32 = 0x1406

	ArrayBuffer uint32 = 0x8892

	StreamDraw  uint32 = 0x88E0
	StaticDraw  uint32 = 0x88E4
	DynamicDraw uint32 = 0x88E8

	Texture2D uint32 = 0x0DE1
	Texture0  uint32 = 0x84C0
	RGB       uint32 = 0x1907

	TextureMagFilter uint32 = 0x2800
	TextureMinFilter uint32 = 0x2801
	TextureWrapS     uint32 = 0x2802
	TextureWrapT     uint32 = 0x2803

	Nearest            uint32 = 0x2600
	Linear             uint32 = 0x2601
	LinearMipmapLinear uint32 = 0x2703
	Repeat             uint32 = 0x2901

	FragmentShader uint32 = 0x8B30
	VertexShader   uint32 = 0x8B31
	GeometryShader uint32 = 0x8DD9

	CompileStatus uint32 = 0x8B81
	LinkStatus    uint32 = 0x8B82
	InfoLogLength uint32 = 0x8B84

	ColorBufferBit uint32 = 0x00004000
)
