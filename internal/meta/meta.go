// Where: internal/meta/meta.go
// What: Project-local metadata constants.
// Why: Keep naming and label conventions in one place.
package meta

const (
	// Project Identity
	AppName   = "envbuild"
	EnvPrefix = "ENVBUILD"

	// Build Context Layout
	DefaultConfigFile   = "envbuild.yml"
	DefaultManifestName = "requirements.txt"
	DockerfileName      = "Dockerfile"

	// Framework Defaults
	DefaultBaseRepository = "apache/airflow"
	DefaultImageRepo      = "airflow-env"
	FrameworkPackage      = "apache-airflow"
	VersionBuildArg       = "AIRFLOW_VERSION"

	LabelPrefix = "com.envbuild"
)

// Labels stamped onto every image produced by the builder.
const (
	LabelManaged          = LabelPrefix + ".managed"
	LabelFrameworkVersion = LabelPrefix + ".framework_version"
	LabelFingerprint      = LabelPrefix + ".fingerprint"
	LabelBuilderVersion   = LabelPrefix + ".builder_version"
)
