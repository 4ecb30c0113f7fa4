package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/mirrorworld/avatar-backend/internal/pipeline/domain"
)

// buildAssetBundle publishes the job's asset files and assembles the result
// payload handed back to clients. The metadata values are stand-ins with
// the production schema; real stage implementations will compute them from
// the uploaded image.
func (e *Executor) buildAssetBundle(jobID string) (*domain.AssetBundle, error) {
	metadata := defaultAvatarMetadata()

	animationJSON, err := json.Marshal(metadata.AnimationConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to encode animation data: %w", err)
	}

	published, err := e.assets.Publish(jobID, animationJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to publish assets: %w", err)
	}

	return &domain.AssetBundle{
		ModelURL:      published.ModelURL,
		TextureURL:    published.TextureURL,
		AnimationData: published.AnimationData,
		Metadata:      metadata,
	}, nil
}

func defaultAvatarMetadata() domain.AvatarMetadata {
	return domain.AvatarMetadata{
		FacialFeatures: domain.FacialFeatures{
			EyeColor: "brown",
			SkinTone: "medium",
			FacialStructure: map[string]float64{
				"jawWidth":    0.8,
				"eyeDistance": 0.6,
			},
			ExpressionCapabilities: []string{"smile", "blink", "frown"},
		},
		BodyMeasurements: domain.BodyMeasurements{
			Height: 1.75,
			Proportions: map[string]float64{
				"shoulderWidth": 0.45,
				"waistWidth":    0.35,
			},
			PostureData: map[string]float64{
				"spineAlignment": 0.9,
			},
		},
		AnimationConfig: domain.AnimationConfig{
			BreathingRate:  16.0,
			BlinkFrequency: 15.0,
			MicroMotions: map[string]float64{
				"headSway":    0.3,
				"weightShift": 0.2,
			},
			IdlePoses: []string{"neutral", "slight_lean", "hand_on_hip"},
		},
	}
}
