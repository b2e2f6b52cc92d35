package service

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/knights-analytics/hugot"
)

// EmbeddingModelName is the sentence-transformer the embedding matrix was
// built with. Changing it invalidates every stored vector.
const EmbeddingModelName = "sentence-transformers/all-MiniLM-L6-v2"

// MiniLMEncoder runs the all-MiniLM-L6-v2 feature-extraction pipeline locally
// and normalizes its output, matching the normalize_embeddings behavior used
// at index-build time.
type MiniLMEncoder struct {
	run     func(text string) ([]float32, error)
	destroy func() error
}

// NewMiniLMEncoder downloads the model into modelDir if needed and starts a
// hugot session. Construction failure means retrieval cannot work at all, so
// callers should treat it as fatal.
func NewMiniLMEncoder(modelDir string) (*MiniLMEncoder, error) {
	modelPath, err := prepareModel(modelDir)
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "cookmate-query-encoder",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create embedding pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create embedding pipeline: %w", err)
	}

	return &MiniLMEncoder{
		run: func(text string) ([]float32, error) {
			result, err := pipeline.RunPipeline([]string{text})
			if err != nil {
				return nil, fmt.Errorf("failed to generate embedding: %w", err)
			}
			if len(result.Embeddings) == 0 {
				return nil, fmt.Errorf("no embedding generated")
			}
			return result.Embeddings[0], nil
		},
		destroy: session.Destroy,
	}, nil
}

// Encode implements Encoder.
func (e *MiniLMEncoder) Encode(text string) ([]float32, error) {
	vec, err := e.run(text)
	if err != nil {
		return nil, err
	}
	return l2Normalize(vec), nil
}

// Close tears down the underlying session.
func (e *MiniLMEncoder) Close() error {
	return e.destroy()
}

// prepareModel downloads the ONNX export of the model if it is not cached yet
// and returns the local path.
func prepareModel(modelDir string) (string, error) {
	modelPath := filepath.Join(modelDir, "sentence-transformers_all-MiniLM-L6-v2")

	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		if err := os.MkdirAll(modelDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create model directory: %w", err)
		}
		downloadOptions := hugot.NewDownloadOptions()
		downloadOptions.OnnxFilePath = "onnx/model.onnx"
		downloadedPath, err := hugot.DownloadModel(EmbeddingModelName, modelDir, downloadOptions)
		if err != nil {
			return "", fmt.Errorf("failed to download embedding model: %w", err)
		}
		modelPath = downloadedPath
	}

	return modelPath, nil
}

func l2Normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return vec
	}
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}
