// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package gltf imports glTF 2.0 files as scene graphs.
package gltf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"maps"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	qgltf "github.com/qmuntal/gltf"
	_ "golang.org/x/image/webp"

	"github.com/gviegas/ares/driver"
	"github.com/gviegas/ares/engine"
	"github.com/gviegas/ares/linear"
	"github.com/gviegas/ares/scene"
)

// Extension names.
const (
	extLights = "KHR_lights_punctual"
	extWebP   = "EXT_texture_webp"
)

// DefaultCamera is the name of the camera node created
// for scenes that do not define one.
const DefaultCamera = "cameraNode"

// ErrNoScene means that the document defines no scenes.
var ErrNoScene = newErr("no scenes in document")

// Asset is an imported glTF file.
// It owns the GPU resources used by its scenes.
type Asset struct {
	Scenes []*scene.Scene
	// Default is the index of the scene the document
	// marks as default, or 0 if it marks none.
	Default  int
	buffers  []*engine.Buffer
	textures []*engine.Texture
}

// Destroy destroys the GPU resources of a.
// Its scenes must not be rendered afterwards.
func (a *Asset) Destroy() {
	for _, b := range a.buffers {
		b.Destroy()
	}
	for _, t := range a.textures {
		t.Destroy()
	}
	a.buffers = nil
	a.textures = nil
}

// Load imports every scene defined in the glTF file at
// path. The scenes are returned in document order.
func Load(path string, cache *engine.ShaderCache, ctx scene.DrawingContext) ([]*scene.Scene, error) {
	a, err := Import(path, cache, ctx, nil)
	if err != nil {
		return nil, err
	}
	return a.Scenes, nil
}

// Import is like Load but returns an Asset.
// If log is nil, slog.Default() is used.
func Import(path string, cache *engine.ShaderCache, ctx scene.DrawingContext, log *slog.Logger) (*Asset, error) {
	if cache == nil {
		return nil, newErr("nil ShaderCache")
	}
	if ctx == nil {
		return nil, scene.ErrNilContext
	}
	if log == nil {
		log = slog.Default()
	}
	doc, err := qgltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf: %w", err)
	}
	if err := check(doc); err != nil {
		return nil, err
	}
	if len(doc.Scenes) == 0 {
		return nil, ErrNoScene
	}
	im := &importer{
		doc:   doc,
		dir:   filepath.Dir(path),
		cache: cache,
		gpu:   cache.GPU(),
		ctx:   ctx,
		log:   log.With("file", filepath.Base(path)),
		asset: new(Asset),
	}
	if err := im.run(); err != nil {
		im.asset.Destroy()
		return nil, err
	}
	if doc.Scene != nil {
		im.asset.Default = *doc.Scene
	}
	return im.asset, nil
}

// importer holds the objects created while importing
// a document. Slices are indexed as in the document.
type importer struct {
	doc   *qgltf.Document
	dir   string
	cache *engine.ShaderCache
	gpu   driver.GPU
	ctx   scene.DrawingContext
	log   *slog.Logger
	asset *Asset

	views     []*engine.Buffer
	images    []image.Image
	textures  []*engine.Texture
	materials []*engine.Material
	defMat    *engine.Material
	cameras   []scene.Camera
	lights    []*engine.Light
	meshes    []*engine.Mesh
}

func (im *importer) run() error {
	steps := []func() error{
		im.buffers,
		im.loadTextures,
		im.loadMaterials,
		im.loadCameras,
		im.loadLights,
		im.loadMeshes,
	}
	for _, f := range steps {
		if err := f(); err != nil {
			return err
		}
	}
	for i, s := range im.doc.Scenes {
		sc, err := im.scene(i, s)
		if err != nil {
			return err
		}
		im.asset.Scenes = append(im.asset.Scenes, sc)
	}
	im.log.Debug("imported glTF",
		"scenes", len(im.asset.Scenes),
		"meshes", len(im.meshes),
		"textures", len(im.textures),
		"buffers", len(im.asset.buffers))
	return nil
}

// buffers creates a GPU buffer for every buffer view
// that primitives read from. Views lacking a target
// get one based on how they are used.
func (im *importer) buffers() error {
	doc := im.doc
	targets := make([]driver.BufTarget, len(doc.BufferViews))
	used := make([]bool, len(doc.BufferViews))
	mark := func(acc int, tgt driver.BufTarget) error {
		v := *doc.Accessors[acc].BufferView
		if used[v] && targets[v] != tgt {
			return invalid("BufferViews[%d] used as both vertex and index data", v)
		}
		used[v] = true
		targets[v] = tgt
		return nil
	}
	for _, m := range doc.Meshes {
		for _, p := range m.Primitives {
			for _, a := range p.Attributes {
				if err := mark(a, driver.BVertex); err != nil {
					return err
				}
			}
			if p.Indices != nil {
				if err := mark(*p.Indices, driver.BIndex); err != nil {
					return err
				}
			}
		}
	}
	im.views = make([]*engine.Buffer, len(doc.BufferViews))
	for i, v := range doc.BufferViews {
		if !used[i] {
			continue
		}
		switch v.Target {
		case qgltf.TargetArrayBuffer:
			targets[i] = driver.BVertex
		case qgltf.TargetElementArrayBuffer:
			targets[i] = driver.BIndex
		}
		off := int(v.ByteOffset)
		data := doc.Buffers[v.Buffer].Data[off : off+int(v.ByteLength)]
		buf, err := engine.NewBuffer(im.gpu, targets[i], data)
		if err != nil {
			return fmt.Errorf("gltf: BufferViews[%d]: %w", i, err)
		}
		im.views[i] = buf
		im.asset.buffers = append(im.asset.buffers, buf)
	}
	return nil
}

// textureSource returns the image index of t.
// The EXT_texture_webp source is preferred when
// present.
func textureSource(t *qgltf.Texture) (int, bool) {
	if ext, ok := t.Extensions[extWebP]; ok {
		var webp struct {
			Source *int `json:"source"`
		}
		if decodeExt(ext, &webp) == nil && webp.Source != nil {
			return *webp.Source, true
		}
	}
	if t.Source != nil {
		return *t.Source, true
	}
	return 0, false
}

// decodeExt decodes the value of an extension into v.
// Unregistered extensions are kept as raw JSON by the
// decoder, which marshals back unchanged.
func decodeExt(ext any, v any) error {
	raw, err := json.Marshal(ext)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

func (im *importer) imageData(i int) ([]byte, error) {
	img := im.doc.Images[i]
	switch {
	case img.BufferView != nil:
		v := im.doc.BufferViews[*img.BufferView]
		off := int(v.ByteOffset)
		return im.doc.Buffers[v.Buffer].Data[off : off+int(v.ByteLength)], nil
	case img.IsEmbeddedResource():
		return img.MarshalData()
	default:
		uri, err := url.PathUnescape(img.URI)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(filepath.Join(im.dir, filepath.FromSlash(uri)))
	}
}

// image decodes the image at index i.
// Decoded images are reused across textures.
func (im *importer) image(i int) (image.Image, error) {
	if im.images == nil {
		im.images = make([]image.Image, len(im.doc.Images))
	}
	if img := im.images[i]; img != nil {
		return img, nil
	}
	data, err := im.imageData(i)
	if err != nil {
		return nil, fmt.Errorf("gltf: Images[%d]: %w", i, err)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gltf: Images[%d]: %w", i, err)
	}
	im.log.Debug("decoded image", "index", i, "format", format, "bounds", img.Bounds())
	im.images[i] = img
	return img, nil
}

// sampling converts a glTF sampler.
// Undefined filters keep their defaults.
func sampling(s *qgltf.Sampler) driver.Sampling {
	spln := engine.DefaultSampling
	if s == nil {
		return spln
	}
	switch s.MagFilter {
	case qgltf.MagNearest:
		spln.Mag = driver.FNearest
	case qgltf.MagLinear:
		spln.Mag = driver.FLinear
	}
	switch s.MinFilter {
	case qgltf.MinNearest:
		spln.Min, spln.Mipmap = driver.FNearest, driver.FNoMipmap
	case qgltf.MinLinear:
		spln.Min, spln.Mipmap = driver.FLinear, driver.FNoMipmap
	case qgltf.MinNearestMipMapNearest:
		spln.Min, spln.Mipmap = driver.FNearest, driver.FNearest
	case qgltf.MinLinearMipMapNearest:
		spln.Min, spln.Mipmap = driver.FLinear, driver.FNearest
	case qgltf.MinNearestMipMapLinear:
		spln.Min, spln.Mipmap = driver.FNearest, driver.FLinear
	case qgltf.MinLinearMipMapLinear:
		spln.Min, spln.Mipmap = driver.FLinear, driver.FLinear
	}
	spln.AddrU = addrMode(s.WrapS)
	spln.AddrV = addrMode(s.WrapT)
	return spln
}

func addrMode(w qgltf.WrappingMode) driver.AddrMode {
	switch w {
	case qgltf.WrapClampToEdge:
		return driver.AClamp
	case qgltf.WrapMirroredRepeat:
		return driver.AMirror
	}
	return driver.AWrap
}

func (im *importer) loadTextures() error {
	im.textures = make([]*engine.Texture, len(im.doc.Textures))
	for i, t := range im.doc.Textures {
		src, _ := textureSource(t)
		img, err := im.image(src)
		if err != nil {
			return err
		}
		var smp *qgltf.Sampler
		if t.Sampler != nil {
			smp = im.doc.Samplers[*t.Sampler]
		}
		tex, err := engine.NewTexture(im.gpu, img, sampling(smp))
		if err != nil {
			return fmt.Errorf("gltf: Textures[%d]: %w", i, err)
		}
		im.textures[i] = tex
		im.asset.textures = append(im.asset.textures, tex)
	}
	// Decoded images are no longer needed.
	im.images = nil
	return nil
}

func (im *importer) texture(i int) (*engine.Texture, error) {
	if !inRange(i, len(im.textures)) {
		return nil, invalid("texture index %d out of range", i)
	}
	return im.textures[i], nil
}

func f32s[T ~float64](dst []float32, src []T) {
	for i := range dst {
		dst[i] = float32(src[i])
	}
}

func (im *importer) material(m *qgltf.Material) (*engine.Material, error) {
	var (
		prop = engine.PBR{
			BaseColor:  engine.BaseColor{Factor: [4]float32{1, 1, 1, 1}},
			MetalRough: engine.MetalRough{Metalness: 1, Roughness: 1},
			Normal:     engine.NormalMap{Scale: 1},
			Occlusion:  engine.OcclusionMap{Strength: 1},
		}
		err error
	)
	if pbr := m.PBRMetallicRoughness; pbr != nil {
		f := pbr.BaseColorFactorOrDefault()
		f32s(prop.BaseColor.Factor[:], f[:])
		prop.MetalRough.Metalness = float32(pbr.MetallicFactorOrDefault())
		prop.MetalRough.Roughness = float32(pbr.RoughnessFactorOrDefault())
		if ti := pbr.BaseColorTexture; ti != nil {
			if prop.BaseColor.Texture, err = im.texture(ti.Index); err != nil {
				return nil, err
			}
		}
		if ti := pbr.MetallicRoughnessTexture; ti != nil {
			if prop.MetalRough.Texture, err = im.texture(ti.Index); err != nil {
				return nil, err
			}
		}
	}
	if nt := m.NormalTexture; nt != nil && nt.Index != nil {
		if prop.Normal.Texture, err = im.texture(*nt.Index); err != nil {
			return nil, err
		}
		prop.Normal.Scale = float32(nt.ScaleOrDefault())
	}
	if ot := m.OcclusionTexture; ot != nil && ot.Index != nil {
		if prop.Occlusion.Texture, err = im.texture(*ot.Index); err != nil {
			return nil, err
		}
		prop.Occlusion.Strength = float32(ot.StrengthOrDefault())
	}
	if ti := m.EmissiveTexture; ti != nil {
		if prop.Emissive.Texture, err = im.texture(ti.Index); err != nil {
			return nil, err
		}
	}
	f32s(prop.Emissive.Factor[:], m.EmissiveFactor[:])
	return engine.NewPBR(im.cache, &prop)
}

func (im *importer) loadMaterials() error {
	im.materials = make([]*engine.Material, len(im.doc.Materials))
	for i, m := range im.doc.Materials {
		mat, err := im.material(m)
		if err != nil {
			return fmt.Errorf("gltf: Materials[%d] (%s): %w", i, m.Name, err)
		}
		im.materials[i] = mat
	}
	return nil
}

// defaultMaterial returns the material used by
// primitives that do not reference one.
func (im *importer) defaultMaterial() (*engine.Material, error) {
	if im.defMat == nil {
		mat, err := im.material(&qgltf.Material{})
		if err != nil {
			return nil, err
		}
		im.defMat = mat
	}
	return im.defMat, nil
}

func (im *importer) loadCameras() error {
	im.cameras = make([]scene.Camera, len(im.doc.Cameras))
	for i, c := range im.doc.Cameras {
		switch {
		case c.Perspective != nil:
			p := c.Perspective
			aspect := float32(1.7778)
			if p.AspectRatio != nil {
				aspect = float32(*p.AspectRatio)
			}
			var zfar float32
			if p.Zfar != nil {
				zfar = float32(*p.Zfar)
			}
			im.cameras[i] = scene.NewPerspective(aspect, float32(p.Yfov), float32(p.Znear), zfar)
		default:
			o := c.Orthographic
			im.cameras[i] = scene.NewOrthographic(float32(o.Xmag), float32(o.Ymag), float32(o.Znear), float32(o.Zfar))
		}
	}
	return nil
}

// KHR_lights_punctual, as found in the document's
// extensions.
type lightsExt struct {
	Lights []struct {
		Type      string      `json:"type"`
		Name      string      `json:"name"`
		Color     *[3]float32 `json:"color"`
		Intensity *float32    `json:"intensity"`
		Range     float32     `json:"range"`
		Spot      *struct {
			InnerConeAngle float32  `json:"innerConeAngle"`
			OuterConeAngle *float32 `json:"outerConeAngle"`
		} `json:"spot"`
	} `json:"lights"`
}

// KHR_lights_punctual, as found in a node's extensions.
type lightRef struct {
	Light *int `json:"light"`
}

// Lights point down -Z in the space of their node.
var lightDir = linear.V3{0, 0, -1}

func (im *importer) loadLights() error {
	ext, ok := im.doc.Extensions[extLights]
	if !ok {
		return nil
	}
	var le lightsExt
	if err := decodeExt(ext, &le); err != nil {
		return fmt.Errorf("gltf: %s: %w", extLights, err)
	}
	im.lights = make([]*engine.Light, len(le.Lights))
	for i, l := range le.Lights {
		var (
			color     = [3]float32{1, 1, 1}
			intensity = float32(1)
			light     engine.Light
		)
		if l.Color != nil {
			color = *l.Color
		}
		if l.Intensity != nil {
			intensity = *l.Intensity
		}
		switch l.Type {
		case "directional":
			light = (&engine.DistantLight{
				Direction: lightDir,
				Intensity: intensity,
				R:         color[0],
				G:         color[1],
				B:         color[2],
			}).Light()
		case "point":
			light = (&engine.PointLight{
				Range:     l.Range,
				Intensity: intensity,
				R:         color[0],
				G:         color[1],
				B:         color[2],
			}).Light()
		case "spot":
			var inner, outer float32 = 0, 0.7853981633974483
			if l.Spot != nil {
				inner = l.Spot.InnerConeAngle
				if l.Spot.OuterConeAngle != nil {
					outer = *l.Spot.OuterConeAngle
				}
			}
			light = (&engine.SpotLight{
				Direction:  lightDir,
				InnerAngle: inner,
				OuterAngle: outer,
				Range:      l.Range,
				Intensity:  intensity,
				R:          color[0],
				G:          color[1],
				B:          color[2],
			}).Light()
		default:
			return invalid("%s light %d has unknown type %q", extLights, i, l.Type)
		}
		im.lights[i] = &light
	}
	return nil
}

func components(t qgltf.AccessorType) int {
	switch t {
	case qgltf.AccessorScalar:
		return 1
	case qgltf.AccessorVec2:
		return 2
	case qgltf.AccessorVec3:
		return 3
	case qgltf.AccessorVec4:
		return 4
	}
	panic("unsupported accessor type")
}

func compType(t qgltf.ComponentType) driver.CompType {
	switch t {
	case qgltf.ComponentByte:
		return driver.Int8
	case qgltf.ComponentUbyte:
		return driver.UInt8
	case qgltf.ComponentShort:
		return driver.Int16
	case qgltf.ComponentUshort:
		return driver.UInt16
	case qgltf.ComponentUint:
		return driver.UInt32
	case qgltf.ComponentFloat:
		return driver.Float32
	}
	panic("unsupported component type")
}

func (im *importer) attrib(name string, acc int) *engine.AttribData {
	a := im.doc.Accessors[acc]
	v := *a.BufferView
	return &engine.AttribData{
		Name:       name,
		Buffer:     im.views[v],
		Size:       components(a.Type),
		Type:       compType(a.ComponentType),
		Normalized: a.Normalized,
		Stride:     int(im.doc.BufferViews[v].ByteStride),
		Offset:     int(a.ByteOffset),
	}
}

func topology(m qgltf.PrimitiveMode) (engine.Topology, bool) {
	switch m {
	case qgltf.PrimitiveTriangles:
		return engine.TriangleList, true
	case qgltf.PrimitiveTriangleStrip:
		return engine.TriangleStrip, true
	case qgltf.PrimitiveTriangleFan:
		return engine.TriangleFan, true
	}
	return 0, false
}

func (im *importer) primitive(p *qgltf.Primitive) (*engine.Primitive, error) {
	topo, _ := topology(p.Mode)
	attrs := make([]*engine.AttribData, 0, len(p.Attributes))
	for _, name := range slices.Sorted(maps.Keys(p.Attributes)) {
		attrs = append(attrs, im.attrib(name, p.Attributes[name]))
	}
	count := int(im.doc.Accessors[p.Attributes[qgltf.POSITION]].Count)
	var index *engine.AttribData
	if p.Indices != nil {
		index = im.attrib("", *p.Indices)
		count = int(im.doc.Accessors[*p.Indices].Count)
	}
	var (
		mat *engine.Material
		err error
	)
	if p.Material != nil {
		mat = im.materials[*p.Material]
	} else if mat, err = im.defaultMaterial(); err != nil {
		return nil, err
	}
	return engine.NewPrimitive(attrs, topo, count, mat, index)
}

func (im *importer) loadMeshes() error {
	im.meshes = make([]*engine.Mesh, len(im.doc.Meshes))
	for i, m := range im.doc.Meshes {
		mesh := engine.NewMesh(m.Name)
		for j, p := range m.Primitives {
			if _, ok := topology(p.Mode); !ok {
				im.log.Warn("skipping primitive with unsupported mode",
					"mesh", i, "primitive", j, "mode", p.Mode)
				continue
			}
			prim, err := im.primitive(p)
			if err != nil {
				return fmt.Errorf("gltf: Meshes[%d].Primitives[%d]: %w", i, j, err)
			}
			mesh.Add(prim)
		}
		im.meshes[i] = mesh
	}
	return nil
}

func (im *importer) scene(i int, s *qgltf.Scene) (*scene.Scene, error) {
	name := s.Name
	if name == "" {
		name = "scene#" + strconv.Itoa(i)
	}
	sc, err := scene.New(name, im.ctx)
	if err != nil {
		return nil, err
	}
	visiting := make([]bool, len(im.doc.Nodes))
	for _, n := range s.Nodes {
		if err := im.node(sc, sc.Root(), n, visiting); err != nil {
			return nil, err
		}
	}
	if sc.ActiveCamera() == nil {
		n, err := sc.CreateCameraNode(DefaultCamera, sc.Root(), scene.NewPerspective(1.7778, 1.05, 0.01, 1000))
		if err != nil {
			return nil, err
		}
		if err := sc.SetActiveCamera(n); err != nil {
			return nil, err
		}
	}
	return sc, nil
}

// nodeName returns the name to use for the node at
// index i. Names already taken get the index as
// suffix.
func nodeName(sc *scene.Scene, name string, i int) string {
	if name != "" && sc.Node(name) != nil {
		return name + "#" + strconv.Itoa(i)
	}
	return name
}

func (im *importer) node(sc *scene.Scene, parent *scene.Node, i int, visiting []bool) error {
	if visiting[i] {
		return invalid("Nodes[%d] is part of a cycle", i)
	}
	visiting[i] = true
	defer func() { visiting[i] = false }()

	var (
		gn   = im.doc.Nodes[i]
		name = nodeName(sc, gn.Name, i)
		ref  lightRef
		n    *scene.Node
		err  error
	)
	if ext, ok := gn.Extensions[extLights]; ok {
		if err := decodeExt(ext, &ref); err != nil {
			return fmt.Errorf("gltf: Nodes[%d]: %w", i, err)
		}
		if ref.Light != nil && !inRange(*ref.Light, len(im.lights)) {
			return invalid("Nodes[%d] light index %d out of range", i, *ref.Light)
		}
	}
	switch {
	case gn.Camera != nil:
		if n, err = sc.CreateCameraNode(name, parent, im.cameras[*gn.Camera]); err == nil {
			err = sc.SetActiveCamera(n)
		}
	case ref.Light != nil:
		n, err = sc.CreateLightNode(name, parent, im.lights[*ref.Light])
	case gn.Mesh != nil:
		n, err = sc.CreateMeshNode(name, parent, im.meshes[*gn.Mesh])
	default:
		n, err = sc.CreateNode(name, parent)
	}
	if err != nil {
		return fmt.Errorf("gltf: Nodes[%d]: %w", i, err)
	}

	// The decoder sets an absent matrix to identity.
	if gm := gn.MatrixOrDefault(); gm != qgltf.DefaultMatrix {
		var m linear.M4
		for c := range m {
			f32s(m[c][:], gm[c*4:c*4+4])
		}
		n.SetTransform(&m)
	} else {
		t := gn.Translation
		r := gn.RotationOrDefault()
		s := gn.ScaleOrDefault()
		n.SetPosition(float32(t[0]), float32(t[1]), float32(t[2]))
		n.SetRotation(&linear.Q{
			V: linear.V3{float32(r[0]), float32(r[1]), float32(r[2])},
			R: float32(r[3]),
		})
		n.SetScale(float32(s[0]), float32(s[1]), float32(s[2]))
	}

	for _, c := range gn.Children {
		if err := im.node(sc, n, c, visiting); err != nil {
			return err
		}
	}
	return nil
}
