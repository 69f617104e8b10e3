package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/yourusername/book-finder/pkg/book"
)

const (
	defaultGeminiBaseURL    = "https://generativelanguage.googleapis.com/v1beta"
	DefaultGeminiImageModel = "gemini-2.0-flash-preview-image-generation"
)

// ErrNoImage is returned when the model answered without an image part.
var ErrNoImage = errors.New("model returned no image")

// Image is a generated picture.
type Image struct {
	MIMEType string
	Data     []byte
}

// DataURI renders the image inline so it can be used as a cover URL.
func (i Image) DataURI() string {
	return "data:" + i.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(i.Data)
}

// ImageModel is the generative image boundary.
type ImageModel interface {
	GenerateImage(ctx context.Context, prompt string) (Image, error)
}

type ImageOption func(*GeminiImageModel)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) ImageOption {
	return func(g *GeminiImageModel) { g.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(c *http.Client) ImageOption {
	return func(g *GeminiImageModel) { g.httpClient = c }
}

// GeminiImageModel calls generateContent with image output enabled.
type GeminiImageModel struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiImageModel(apiKey, model string, timeout time.Duration, opts ...ImageOption) (*GeminiImageModel, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, &book.CredentialError{Name: "GEMINI_API_KEY"}
	}
	if model == "" {
		model = DefaultGeminiImageModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	g := &GeminiImageModel{
		apiKey:     apiKey,
		model:      strings.TrimPrefix(strings.TrimSpace(model), "models/"),
		baseURL:    defaultGeminiBaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *GeminiImageModel) GenerateImage(ctx context.Context, prompt string) (Image, error) {
	reqBody := imageRequest{
		Contents: []imageContent{{
			Role:  "user",
			Parts: []imagePart{{Text: prompt}},
		}},
		GenerationConfig: imageGenerationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	}

	var resp imageResponse
	if err := g.doJSON(ctx, fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model), reqBody, &resp); err != nil {
		return Image{}, err
	}

	for _, c := range resp.Candidates {
		for _, p := range c.Content.Parts {
			if p.InlineData == nil || p.InlineData.Data == "" {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return Image{}, fmt.Errorf("failed to decode image data: %w", err)
			}
			mime := p.InlineData.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			return Image{MIMEType: mime, Data: data}, nil
		}
	}
	return Image{}, ErrNoImage
}

func (g *GeminiImageModel) doJSON(ctx context.Context, url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp imageErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error.Message != "" {
			return fmt.Errorf("gemini api error: %s", errResp.Error.Message)
		}
		return fmt.Errorf("gemini api error: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type imagePart struct {
	Text       string           `json:"text,omitempty"`
	InlineData *imageInlineData `json:"inlineData,omitempty"`
}

type imageInlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type imageContent struct {
	Role  string      `json:"role,omitempty"`
	Parts []imagePart `json:"parts"`
}

type imageGenerationConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

type imageRequest struct {
	Contents         []imageContent        `json:"contents"`
	GenerationConfig imageGenerationConfig `json:"generationConfig"`
}

type imageResponse struct {
	Candidates []struct {
		Content imageContent `json:"content"`
	} `json:"candidates"`
}

type imageErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}
