package domain

// A list of config keys supported by the recognition pipeline and its default infrastructure.

const (
	// ConfigKeyLogPath file path where to save the logs
	ConfigKeyLogPath = "logPath"
	// ConfigKeyCandidateLabels free-text labels passed to the zero-shot detector
	ConfigKeyCandidateLabels = "candidateLabels"
	// ConfigKeyDetectorBackend how to reach the detector: "http" (an inference endpoint) or "cli" (an external command)
	ConfigKeyDetectorBackend = "detectorBackend"
	// ConfigKeyDetectorURL base URL of a Hugging Face compatible inference endpoint
	ConfigKeyDetectorURL = "detectorURL"
	// ConfigKeyDetectorAPIToken bearer token for the inference endpoint, if it requires one
	ConfigKeyDetectorAPIToken = "detectorAPIToken"
	// ConfigKeyDetectorTimeout how long to wait for the inference endpoint, in milliseconds
	ConfigKeyDetectorTimeout = "detectorTimeout"
	// ConfigKeyDetectorCommand path to the external detector command (for the "cli" backend)
	ConfigKeyDetectorCommand = "detectorCommand"
	// ConfigKeyDetectorCheckpoint the detector checkpoint to load
	ConfigKeyDetectorCheckpoint = "detectorCheckpoint"
	// ConfigKeyDetectorThreshold detections scored below it are ignored
	ConfigKeyDetectorThreshold = "detectorThreshold"
	// ConfigKeyDevice "auto", "cuda" or "cpu"
	ConfigKeyDevice = "device"
	// ConfigKeyOCRLanguage the language (trained data) of the text recognizer
	ConfigKeyOCRLanguage = "ocrLanguage"
	// ConfigKeyOCRAngleClassification whether the text recognizer should detect text orientation first
	ConfigKeyOCRAngleClassification = "ocrAngleClassification"
	// ConfigKeyOCRChannelOrder overrides the channel order the text recognizer is fed with ("rgb" or "bgr")
	ConfigKeyOCRChannelOrder = "ocrChannelOrder"
	// ConfigKeyTempFilePathProvider the directory where downloaded images are stored while they're processed
	ConfigKeyTempFilePathProvider = "tempFilePathProvider"
)

const (
	DefaultCandidateLabel     = "license plate"
	DefaultDetectorCheckpoint = "google/owlv2-base-patch16-ensemble"
	DefaultDetectorThreshold  = 0.1
	DefaultOCRLanguage        = "eng"
)
