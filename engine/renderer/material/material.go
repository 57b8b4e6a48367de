package material

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/renderer/bind_group_provider"
)

// MaterialType selects the shading model and with it the render pipeline a material draws with.
type MaterialType int

const (
	// MaterialTypeStandard is the lit physically based material (color, roughness, metalness,
	// color map, normal map).
	MaterialTypeStandard MaterialType = iota

	// MaterialTypeBasic is the unlit material (color, color map).
	MaterialTypeBasic

	// MaterialTypeLine draws line lists with per-vertex colors tinted by the material color.
	MaterialTypeLine
)

// String returns the lowercase name of the material type, which is also its default pipeline key.
func (t MaterialType) String() string {
	switch t {
	case MaterialTypeStandard:
		return "standard"
	case MaterialTypeBasic:
		return "basic"
	case MaterialTypeLine:
		return "line"
	default:
		return "unknown"
	}
}

// TextureSlots lists the texture slots the type's shader samples.
//
// Returns:
//   - []int: slot indices (SlotMap, SlotNormalMap), empty for line materials
func (t MaterialType) TextureSlots() []int {
	switch t {
	case MaterialTypeStandard:
		return []int{SlotMap, SlotNormalMap}
	case MaterialTypeBasic:
		return []int{SlotMap}
	default:
		return nil
	}
}

const (
	// SlotMap is the color map slot, sampled as sRGB.
	SlotMap = iota

	// SlotNormalMap is the tangent space normal map slot, sampled as linear data.
	SlotNormalMap

	slotCount
)

// UniformBinding is the material uniform's binding in group 3. Each texture slot follows it
// with a texture and sampler pair.
const UniformBinding = 0

// SlotBindings returns the texture and sampler binding indices of a texture slot.
//
// Parameters:
//   - slot: SlotMap or SlotNormalMap
//
// Returns:
//   - int: the texture view binding
//   - int: the sampler binding
func SlotBindings(slot int) (texture, sampler int) {
	return 1 + slot*2, 2 + slot*2
}

// SlotColorSpace returns how a slot's texels are interpreted by the GPU.
func SlotColorSpace(slot int) common.ColorSpace {
	if slot == SlotNormalMap {
		return common.ColorSpaceLinear
	}
	return common.ColorSpaceSRGB
}

// Texture is an image whose pixels may arrive after the material is created.
// Version starts at 0 and increases every time new pixels become available.
type Texture interface {
	Ready() bool
	Staging() common.TextureStagingData
	Version() uint64
}

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name         string
	materialType MaterialType
	color        common.Color
	roughness    float32
	metalness    float32
	normalScale  [2]float32

	textures [slotCount]Texture
	// uploaded holds the texture version currently bound per slot, 0 while the fallback is bound.
	uploaded [slotCount]uint64

	pipelineKey       string
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Material describes how a surface is shaded: its type, color, PBR factors and texture slots.
// It tracks which texture versions have been uploaded so the scene can re-upload when an
// asynchronous texture finishes loading or is reloaded from disk.
type Material interface {
	// Name returns the material's name, used for GPU labels and logging.
	Name() string

	// Type returns the shading model of the material.
	Type() MaterialType

	// Color returns the sRGB base color multiplied into every fragment.
	Color() common.Color

	// SetColor replaces the base color.
	//
	// Parameters:
	//   - c: the new sRGB color
	SetColor(c common.Color)

	// Roughness returns the microfacet roughness in [0, 1].
	Roughness() float32

	// Metalness returns the metallic factor in [0, 1].
	Metalness() float32

	// NormalScale returns the per-axis strength applied to the normal map's tangent components.
	NormalScale() [2]float32

	// Texture returns the texture assigned to a slot, or nil.
	//
	// Parameters:
	//   - slot: SlotMap or SlotNormalMap
	//
	// Returns:
	//   - Texture: the assigned texture, nil if the slot is empty or out of range
	Texture(slot int) Texture

	// SetTexture assigns a texture to a slot. The uploaded version is reset so the next
	// frame binds the new texture once it is ready.
	//
	// Parameters:
	//   - slot: SlotMap or SlotNormalMap
	//   - tex: the texture, nil to clear the slot
	SetTexture(slot int, tex Texture)

	// PendingTextures returns the slots used by this material's type whose texture is ready
	// with a version newer than the one bound on the GPU.
	//
	// Returns:
	//   - []int: the slots to upload, in slot order
	PendingTextures() []int

	// MarkUploaded records the texture version bound for a slot.
	//
	// Parameters:
	//   - slot: the slot that was uploaded
	//   - version: the texture version that was uploaded
	MarkUploaded(slot int, version uint64)

	// Uniform builds the GPU representation of the material. A texture slot is flagged in use
	// only once a real texture has been uploaded; until then the shader ignores the fallback.
	//
	// Returns:
	//   - GPUMaterialUniform: the uniform ready to marshal
	Uniform() GPUMaterialUniform

	// PipelineKey returns the key of the render pipeline this material draws with.
	PipelineKey() string

	// SetPipelineKey overrides the render pipeline this material draws with.
	SetPipelineKey(key string)

	// BindGroupProvider returns the provider holding the material's group 3 resources.
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// SetBindGroupProvider replaces the material's bind group provider.
	SetBindGroupProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Material = &material{}

// NewMaterial creates a Material of the given type. Defaults: white, roughness 1, metalness 0,
// normal scale (1, 1), no textures.
//
// Parameters:
//   - materialType: the shading model
//   - options: functional options applied in order
//
// Returns:
//   - Material: the configured material
func NewMaterial(materialType MaterialType, options ...MaterialBuilderOption) Material {
	m := &material{
		mu:           &sync.Mutex{},
		name:         materialType.String(),
		materialType: materialType,
		color:        common.White,
		roughness:    1,
		normalScale:  [2]float32{1, 1},
		pipelineKey:  materialType.String(),
	}
	for _, opt := range options {
		opt(m)
	}
	if m.bindGroupProvider == nil {
		m.bindGroupProvider = bind_group_provider.NewBindGroupProvider(m.name + "_material")
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Type() MaterialType {
	return m.materialType
}

func (m *material) Color() common.Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.color
}

func (m *material) SetColor(c common.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.color = c
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Metalness() float32 {
	return m.metalness
}

func (m *material) NormalScale() [2]float32 {
	return m.normalScale
}

func (m *material) Texture(slot int) Texture {
	if slot < 0 || slot >= slotCount {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.textures[slot]
}

func (m *material) SetTexture(slot int, tex Texture) {
	if slot < 0 || slot >= slotCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.textures[slot] = tex
	m.uploaded[slot] = 0
}

func (m *material) PendingTextures() []int {
	m.mu.Lock()
	defer m.mu.Unlock()

	var pending []int
	for _, slot := range m.materialType.TextureSlots() {
		tex := m.textures[slot]
		if tex == nil || !tex.Ready() {
			continue
		}
		if tex.Version() > m.uploaded[slot] {
			pending = append(pending, slot)
		}
	}
	return pending
}

func (m *material) MarkUploaded(slot int, version uint64) {
	if slot < 0 || slot >= slotCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploaded[slot] = version
}

func (m *material) Uniform() GPUMaterialUniform {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.color.Linear()
	u := GPUMaterialUniform{
		Color:       [4]float32{c[0], c[1], c[2], 1},
		Roughness:   m.roughness,
		Metalness:   m.metalness,
		NormalScale: m.normalScale,
	}
	if m.uploaded[SlotMap] > 0 {
		u.UseMap = 1
	}
	if m.uploaded[SlotNormalMap] > 0 {
		u.UseNormalMap = 1
	}
	return u
}

func (m *material) PipelineKey() string {
	return m.pipelineKey
}

func (m *material) SetPipelineKey(key string) {
	m.pipelineKey = key
}

func (m *material) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return m.bindGroupProvider
}

func (m *material) SetBindGroupProvider(provider bind_group_provider.BindGroupProvider) {
	m.bindGroupProvider = provider
}
