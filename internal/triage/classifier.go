package triage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrClassifierUnavailable is returned when the ML capability is absent,
// times out, or answers with something unusable. Callers always recover by
// falling back to the rule path; this error never reaches the client.
var ErrClassifierUnavailable = errors.New("classifier unavailable")

// Classifier is the optional text+demographics -> urgency capability. The
// class is on a 1-5 severity scale (1 most severe).
type Classifier interface {
	Predict(ctx context.Context, symptoms string, age, sex int) (int, error)
}

// classLevel maps the 5-point model scale onto levels; the top two
// classes both collapse to Emergency.
var classLevel = map[int]Level{
	1: LevelEmergency,
	2: LevelEmergency,
	3: LevelUrgent,
	4: LevelPrimaryCare,
	5: LevelPharmacy,
}

// LevelForClass resolves a model class to a Level, defaulting to PrimaryCare
// for anything outside the known scale.
func LevelForClass(class int) Level {
	if l, ok := classLevel[class]; ok {
		return l
	}
	return LevelPrimaryCare
}

// httpClassifier calls an external inference service. The request is bounded
// by the client timeout; any failure surfaces as ErrClassifierUnavailable.
type httpClassifier struct {
	url        string
	httpClient *http.Client
}

// NewHTTPClassifier returns a Classifier backed by the inference service at
// baseURL.
func NewHTTPClassifier(baseURL string, timeout time.Duration) Classifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpClassifier{
		url: baseURL + "/predict",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type predictRequest struct {
	Symptoms string `json:"symptoms"`
	Age      int    `json:"age"`
	Sex      int    `json:"sex"`
}

type predictResponse struct {
	Class int `json:"class"`
}

func (c *httpClassifier) Predict(ctx context.Context, symptoms string, age, sex int) (int, error) {
	body, err := json.Marshal(predictRequest{Symptoms: symptoms, Age: age, Sex: sex})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("%w: status %s: %s", ErrClassifierUnavailable, resp.Status, string(respBody))
	}

	var result predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("%w: malformed response: %v", ErrClassifierUnavailable, err)
	}
	if result.Class < 1 || result.Class > 5 {
		return 0, fmt.Errorf("%w: class %d out of range", ErrClassifierUnavailable, result.Class)
	}
	return result.Class, nil
}

// unavailableClassifier is the variant selected at startup when no inference
// service is configured. The pipeline then never re-checks existence.
type unavailableClassifier struct{}

// UnavailableClassifier returns the no-capability variant.
func UnavailableClassifier() Classifier {
	return unavailableClassifier{}
}

func (unavailableClassifier) Predict(context.Context, string, int, int) (int, error) {
	return 0, ErrClassifierUnavailable
}
