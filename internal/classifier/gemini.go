package classifier

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// DefaultModels — упорядоченный список фолбэка: сначала самая свежая модель,
// в конце самая стабильная
var DefaultModels = []string{
	"gemini-2.0-flash",
	"gemini-1.5-flash",
	"gemini-1.5-flash-8b",
}

const classifyPrompt = `You are a municipal waste inspector. Classify the civic waste shown in the photo into exactly one of these categories: Bio-Hazard, Dead Animal, Garbage Dump, Construction Debris, Litter.
Severity and deadline policy:
- Bio-Hazard or Dead Animal: severity High, hours 24
- Garbage Dump or Construction Debris: severity Medium, hours 72
- Litter: severity Low, hours 168
Respond with JSON only, no prose, no markdown:
{"category": "<category>", "severity": "High|Medium|Low", "hours": <integer>}`

type GeminiClassifier struct {
	apiKey  string
	baseURL string
	models  []string
	timeout time.Duration
	client  *http.Client
}

func NewGeminiClassifier(apiKey string, timeout time.Duration) *GeminiClassifier {
	return &GeminiClassifier{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		models:  DefaultModels,
		timeout: timeout,
		client:  &http.Client{},
	}
}

// NewGeminiClassifierWithBaseURL используется в тестах для подмены API
func NewGeminiClassifierWithBaseURL(apiKey, baseURL string, models []string, timeout time.Duration) *GeminiClassifier {
	return &GeminiClassifier{
		apiKey:  apiKey,
		baseURL: baseURL,
		models:  models,
		timeout: timeout,
		client:  &http.Client{},
	}
}

// Структуры запроса/ответа generateContent
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Classify перебирает модели по порядку; каждая попытка выполняется под
// собственным таймаутом, чтобы зависшая модель не блокировала приём жалобы.
// Попытки строго последовательные: следующая модель вызывается только после
// наблюдаемого отказа предыдущей
func (g *GeminiClassifier) Classify(ctx context.Context, image []byte, hint string) (*Result, error) {
	prompt := classifyPrompt
	if hint != "" {
		prompt += fmt.Sprintf("\nThe reporter suggested the category %q; correct it if the photo disagrees.", hint)
	}

	for _, model := range g.models {
		modelCtx, cancel := context.WithTimeout(ctx, g.timeout)
		res, err := g.classifyWithModel(modelCtx, model, image, prompt)
		cancel()

		if err == nil {
			return res, nil
		}

		log.Printf("Классификация моделью %s не удалась: %v", model, err)
	}

	return nil, ErrAllModelsFailed
}

func (g *GeminiClassifier) classifyWithModel(ctx context.Context, model string, image []byte, prompt string) (*Result, error) {
	reqBody := generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: prompt},
				{InlineData: &inlineData{
					MimeType: "image/jpeg",
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
			},
		}},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка сериализации запроса: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.baseURL, model, g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ошибка вызова модели: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// 429 и 503 приходят при квотах и недоступности модели; для фолбэка
		// они неотличимы от любой другой ошибки
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("модель ответила статусом %d: %s", resp.StatusCode, string(data))
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("ошибка разбора ответа: %w", err)
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("пустой ответ модели")
	}

	text := stripCodeFence(genResp.Candidates[0].Content.Parts[0].Text)

	var result Result
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return nil, fmt.Errorf("ответ модели не является JSON: %w", err)
	}

	if err := normalize(&result); err != nil {
		return nil, err
	}

	return &result, nil
}

// stripCodeFence убирает обёртку ```json ... ```, которую модели добавляют
// вопреки инструкции отвечать чистым JSON
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	return strings.TrimSpace(text)
}
