package domain

// OutputMapping ties an input file to the location of its companion artifact.
type OutputMapping struct {
	// InputPath is the source file the artifact is generated for.
	InputPath string `json:"inputPath"`
	// OutputPath is where the companion artifact is written.
	OutputPath string `json:"outputPath"`
	// SkipIfExists is true when no explicit output was requested and a
	// companion already exists at OutputPath.
	SkipIfExists bool `json:"skipIfExists"`
}
