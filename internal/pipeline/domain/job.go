package domain

import "time"

// Job represents one submitted avatar request and its observable state.
// A Job is created by the scheduler, mutated only by the executor that owns
// it, and read by status pollers.
type Job struct {
	ID           string
	CurrentStage string
	Progress     float64
	IsCompleted  bool
	Assets       *AssetBundle
	Error        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Failed reports whether the job terminated abnormally.
func (j *Job) Failed() bool {
	return j.IsCompleted && j.Error != ""
}

// Clone returns a deep copy safe to hand to readers.
func (j *Job) Clone() Job {
	out := *j
	if j.Assets != nil {
		bundle := j.Assets.Clone()
		out.Assets = &bundle
	}
	return out
}

// JobPatch is a partial-state merge applied atomically by the registry.
// Nil fields are left untouched.
type JobPatch struct {
	CurrentStage *string
	Progress     *float64
	IsCompleted  *bool
	Assets       *AssetBundle
	Error        *string
}

// AssetBundle holds the addressable locations of the generated assets plus
// the metadata block produced by the final stage. Field names follow the
// client-facing JSON contract.
type AssetBundle struct {
	ModelURL      string         `json:"modelURL"`
	TextureURL    string         `json:"textureURL"`
	AnimationData string         `json:"animationData"`
	Metadata      AvatarMetadata `json:"metadata"`
}

// Clone returns a deep copy of the bundle.
func (b AssetBundle) Clone() AssetBundle {
	out := b
	out.Metadata = b.Metadata.Clone()
	return out
}

// AvatarMetadata describes the derived facial, body, and animation
// attributes attached to a completed avatar.
type AvatarMetadata struct {
	FacialFeatures   FacialFeatures   `json:"facialFeatures"`
	BodyMeasurements BodyMeasurements `json:"bodyMeasurements"`
	AnimationConfig  AnimationConfig  `json:"animationConfig"`
}

type FacialFeatures struct {
	EyeColor               string             `json:"eyeColor"`
	SkinTone               string             `json:"skinTone"`
	FacialStructure        map[string]float64 `json:"facialStructure"`
	ExpressionCapabilities []string           `json:"expressionCapabilities"`
}

type BodyMeasurements struct {
	Height      float64            `json:"height"`
	Proportions map[string]float64 `json:"proportions"`
	PostureData map[string]float64 `json:"postureData"`
}

type AnimationConfig struct {
	BreathingRate  float64            `json:"breathingRate"`
	BlinkFrequency float64            `json:"blinkFrequency"`
	MicroMotions   map[string]float64 `json:"microMotions"`
	IdlePoses      []string           `json:"idlePoses"`
}

// Clone returns a deep copy of the metadata block.
func (m AvatarMetadata) Clone() AvatarMetadata {
	out := m
	out.FacialFeatures.FacialStructure = copyFloatMap(m.FacialFeatures.FacialStructure)
	out.FacialFeatures.ExpressionCapabilities = copyStrings(m.FacialFeatures.ExpressionCapabilities)
	out.BodyMeasurements.Proportions = copyFloatMap(m.BodyMeasurements.Proportions)
	out.BodyMeasurements.PostureData = copyFloatMap(m.BodyMeasurements.PostureData)
	out.AnimationConfig.MicroMotions = copyFloatMap(m.AnimationConfig.MicroMotions)
	out.AnimationConfig.IdlePoses = copyStrings(m.AnimationConfig.IdlePoses)
	return out
}

func copyFloatMap(in map[string]float64) map[string]float64 {
	if in == nil {
		return nil
	}
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// Helpers for building patches without local pointer variables.

func StringPtr(s string) *string    { return &s }
func Float64Ptr(f float64) *float64 { return &f }
func BoolPtr(b bool) *bool          { return &b }
