package meshes

import (
	"errors"

	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/libgraphics/assert"
	"github.com/bloeys/libgraphics/buffers"
	"github.com/bloeys/libgraphics/logging"
	"github.com/bloeys/libgraphics/textures"
)

var (
	// DefaultMeshLoadFlags are the flags always applied when loading a mesh regardless
	// of what post process flags are passed.
	//
	// Triangulation is required since buffers hold plain triangle lists
	DefaultMeshLoadFlags asig.PostProcess = asig.PostProcessTriangulate
)

// LoadVertexBuffers imports a model file and returns one triangle buffer per mesh in it.
// Faces are expanded so every three vertices form one triangle.
//
// If tex is not nil every buffer is textured with it and takes UV0 from the model,
// otherwise the buffers are untextured.
func LoadVertexBuffers(modelPath string, postProcessFlags asig.PostProcess, tex *textures.Texture) ([]*buffers.VertexBuffer, error) {

	scene, release, err := asig.ImportFile(modelPath, DefaultMeshLoadFlags|postProcessFlags)
	if err != nil {
		return nil, errors.New("Failed to load model. Err: " + err.Error())
	}
	defer release()

	if len(scene.Meshes) == 0 {
		return nil, errors.New("No meshes found in file: " + modelPath)
	}

	vbs := make([]*buffers.VertexBuffer, 0, len(scene.Meshes))
	for i := 0; i < len(scene.Meshes); i++ {

		sceneMesh := scene.Meshes[i]
		if len(sceneMesh.Faces) == 0 {
			logging.WarnLog.Printf("Skipping mesh %d of model '%s' since it has no faces\n", i, modelPath)
			continue
		}

		if len(sceneMesh.Normals) == 0 {
			sceneMesh.Normals = make([]gglm.Vec3, len(sceneMesh.Vertices))
		}

		var uvs []gglm.Vec2
		if tex != nil {
			if len(sceneMesh.TexCoords[0]) == 0 {
				uvs = make([]gglm.Vec2, len(sceneMesh.Vertices))
			} else {
				uvs = v3sToV2s(sceneMesh.TexCoords[0])
			}
		}

		verts := expandFaces(flattenFaces(sceneMesh.Faces), sceneMesh.Vertices, sceneMesh.Normals, uvs)
		if tex != nil {
			vbs = append(vbs, buffers.NewTexturedVertexBuffer(verts, buffers.Primitive_Triangle, tex))
		} else {
			vbs = append(vbs, buffers.NewVertexBufferOwned(verts, buffers.Primitive_Triangle, false))
		}
	}

	logging.DebugLog.Printf("Loaded %d vertex buffer(s) from model '%s'\n", len(vbs), modelPath)
	return vbs, nil
}

func expandFaces(indices []uint32, positions, normals []gglm.Vec3, uvs []gglm.Vec2) []buffers.Vertex {

	verts := make([]buffers.Vertex, len(indices))
	for i, index := range indices {

		assert.T(int(index) < len(positions), "Face index %d out of range of %d vertices", index, len(positions))

		verts[i].Pos = positions[index]
		verts[i].Normal = normals[index]
		if len(uvs) > 0 {
			verts[i].TexCoord = uvs[index]
		}
	}

	return verts
}

func v3sToV2s(v3s []gglm.Vec3) []gglm.Vec2 {

	v2s := make([]gglm.Vec2, len(v3s))
	for i := 0; i < len(v3s); i++ {
		v2s[i] = gglm.Vec2{
			Data: [2]float32{v3s[i].X(), v3s[i].Y()},
		}
	}

	return v2s
}

func flattenFaces(faces []asig.Face) []uint32 {

	assert.T(len(faces[0].Indices) == 3, "Face doesn't have 3 indices. Index count: %v\n", len(faces[0].Indices))

	uints := make([]uint32, len(faces)*3)
	for i := 0; i < len(faces); i++ {
		uints[i*3+0] = uint32(faces[i].Indices[0])
		uints[i*3+1] = uint32(faces[i].Indices[1])
		uints[i*3+2] = uint32(faces[i].Indices[2])
	}

	return uints
}
