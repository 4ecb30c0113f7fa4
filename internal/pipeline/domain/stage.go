package domain

// Stage name constants, including the two terminal sentinels that never
// appear in the executable stage table.
const (
	StagePending   = "pending"
	StageCompleted = "completed"

	StageUploading      = "uploading"
	StageSegmentation   = "segmentation"
	StageDepthAnalysis  = "depth_analysis"
	StageMeshGeneration = "mesh_generation"
	StageTextureMapping = "texture_mapping"
	StageRigging        = "rigging"
	StageAnimation      = "animation"
	StageUnityPrep      = "unity_prep"
)

// StageDefinition describes one step of the avatar pipeline: its wire name,
// a human-readable label for clients, and the progress checkpoint a job
// reaches when the stage begins.
type StageDefinition struct {
	Name           string
	Label          string
	TargetProgress float64
}

// stageTable is the fixed execution order shared by all jobs. Progress
// checkpoints are coarse by design; stage handlers are opaque, long-running
// units of work.
var stageTable = []StageDefinition{
	{StageUploading, "Uploading to backend...", 0.1},
	{StageSegmentation, "MODNet person segmentation...", 0.2},
	{StageDepthAnalysis, "MiDaS depth estimation...", 0.3},
	{StageMeshGeneration, "RenderNet 3D mesh creation...", 0.5},
	{StageTextureMapping, "PIKE texture generation...", 0.7},
	{StageRigging, "Adding facial blendshapes...", 0.8},
	{StageAnimation, "Injecting breathing & micro-motions...", 0.9},
	{StageUnityPrep, "Preparing for Unity import...", 0.95},
}

// Stages returns a copy of the ordered stage table.
func Stages() []StageDefinition {
	out := make([]StageDefinition, len(stageTable))
	copy(out, stageTable)
	return out
}

// StageNames returns the ordered names of the executable stages.
func StageNames() []string {
	names := make([]string, len(stageTable))
	for i, s := range stageTable {
		names[i] = s.Name
	}
	return names
}
