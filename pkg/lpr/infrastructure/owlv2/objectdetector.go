package owlv2

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"kgeyst.com/platereader/pkg/common"
	"kgeyst.com/platereader/pkg/lpr/domain"
	"kgeyst.com/platereader/pkg/lpr/infrastructure/imaging"
)

const (
	defaultEndpoint = "http://127.0.0.1:8080"
	defaultTimeout  = 60 * time.Second
)

// ObjectDetector talks to a Hugging Face compatible inference endpoint which serves a zero-shot object detection
// model (OWLv2 by default).
type ObjectDetector struct {
	modelURL   string
	apiToken   string
	threshold  float64
	httpClient *http.Client
}

type request struct {
	Inputs     requestInputs     `json:"inputs"`
	Parameters requestParameters `json:"parameters"`
}

type requestInputs struct {
	Image string `json:"image"`
}

type requestParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	Threshold       float64  `json:"threshold"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewObjectDetector(config *common.Config) *ObjectDetector {
	endpoint := config.GetStringOrDefault(domain.ConfigKeyDetectorURL, defaultEndpoint)
	checkpoint := config.GetStringOrDefault(domain.ConfigKeyDetectorCheckpoint, domain.DefaultDetectorCheckpoint)
	return &ObjectDetector{
		modelURL:  strings.TrimRight(endpoint, "/") + "/models/" + checkpoint,
		apiToken:  config.GetString(domain.ConfigKeyDetectorAPIToken),
		threshold: config.GetFloatOrDefault(domain.ConfigKeyDetectorThreshold, domain.DefaultDetectorThreshold),
		httpClient: &http.Client{
			Timeout: config.GetDurationOrDefault(domain.ConfigKeyDetectorTimeout, defaultTimeout),
		},
	}
}

func (d *ObjectDetector) Detect(img image.Image, candidateLabels []string) ([]domain.Detection, error) {
	body, err := d.buildRequestBody(img, candidateLabels)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, d.modelURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if d.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+d.apiToken)
	}
	res, err := d.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	content, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("detector endpoint returned %s: %s", res.Status, errorMessage(content))
	}
	var detections []domain.Detection
	err = json.Unmarshal(content, &detections)
	if err != nil {
		return nil, fmt.Errorf("malformed detector response: %w", err)
	}
	detections = domain.FilterDetectionsByScore(detections, d.threshold)
	domain.SortDetectionsByScore(detections)
	return detections, nil
}

func (d *ObjectDetector) buildRequestBody(img image.Image, candidateLabels []string) ([]byte, error) {
	data, err := imaging.EncodePNG(img)
	if err != nil {
		return nil, err
	}
	return json.Marshal(request{
		Inputs: requestInputs{
			Image: base64.StdEncoding.EncodeToString(data),
		},
		Parameters: requestParameters{
			CandidateLabels: candidateLabels,
			Threshold:       d.threshold,
		},
	})
}

func errorMessage(content []byte) string {
	var response errorResponse
	if json.Unmarshal(content, &response) == nil && response.Error != "" {
		return response.Error
	}
	return strings.TrimSpace(string(content))
}
