package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// GeminiClient calls the generateContent REST endpoint. The model answers
// with structured JSON which is coerced defensively: the upstream is best
// effort and its failures must degrade to placeholder content, never to a
// user-visible error.
type GeminiClient struct {
	APIKey string
	Model  string
}

func NewGeminiFromEnv() *GeminiClient {
	model := strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if model == "" {
		model = "gemini-flash-latest"
	}
	return &GeminiClient{
		APIKey: os.Getenv("GEMINI_API_KEY"),
		Model:  model,
	}
}

// Place is one AI-recommended destination before it is attached to a city.
type Place struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Link  string  `json:"link"`
}

// CityData is the structured payload the generation prompt asks for.
type CityData struct {
	Description string  `json:"description"`
	Places      []Place `json:"places"`
	FoodPrice   float64 `json:"foodPrice"`
	HotelPrice  float64 `json:"hotelPrice"`
}

const cityDataPrompt = `Сгенерируй ДАННЫЕ В СТРОГОМ JSON без комментариев и форматирования кода.
Город: %s.

Требуемая структура JSON:
{
  "description": string,
  "places": [
    { "name": string, "price": number, "link": string },
    { "name": string, "price": number, "link": string },
    { "name": string, "price": number, "link": string }
  ],
  "foodPrice": number,
  "hotelPrice": number
}

Требования:
- Верни ТОЛЬКО валидный JSON без пояснений и markdown.
- Цены указывай ориентировочно для Казахстана в тенге (₸), НО в числовом формате без символа.
- Ссылки указывай на официальные сайты или туристические страницы, если известно, иначе пустую строку.
- Пиши на русском языке.`

// GenerateCityData asks the model for a description, recommended places
// and baseline prices for the city.
func (g *GeminiClient) GenerateCityData(ctx context.Context, city string) (*CityData, error) {
	text, err := g.generate(ctx, fmt.Sprintf(cityDataPrompt, city))
	if err != nil {
		return nil, err
	}
	data := parseCityData(text)
	return &data, nil
}

const describePrompt = `Напиши короткое, дружелюбное описание путешествия (80–120 слов) для города %s. Упомяни ключевые достопримечательности, атмосферу/культуру и дай один полезный совет. Избегай списков. Ответ дай на русском языке.`

// Describe asks the model for a free-text travel description.
func (g *GeminiClient) Describe(ctx context.Context, city string) (string, error) {
	return g.generate(ctx, fmt.Sprintf(describePrompt, city))
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(g.APIKey) == "" {
		return "", fmt.Errorf("GEMINI_API_KEY is not set")
	}

	payload := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	b, _ := json.Marshal(payload)

	endpoint := "https://generativelanguage.googleapis.com/v1beta/models/" +
		url.PathEscape(g.Model) + ":generateContent?key=" + url.QueryEscape(g.APIKey)

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode >= 300 {
		return "", &httpError{Status: res.StatusCode, Body: string(body)}
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}

	var sb strings.Builder
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			sb.WriteString(p.Text)
		}
	}
	return sb.String(), nil
}

type httpError struct {
	Status int
	Body   string
}

func (e *httpError) Error() string {
	return "gemini http error " + strconv.Itoa(e.Status)
}

var fenceRe = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)```")

// parseCityData coerces a model response into CityData. Fenced JSON is
// unwrapped, a double-encoded description is unwrapped, and every field
// gets a safe fallback: the model output is never trusted as-is.
func parseCityData(text string) CityData {
	parsed := tryParse(text)
	if parsed == nil {
		if m := fenceRe.FindStringSubmatch(text); len(m) == 2 {
			parsed = tryParse(strings.TrimSpace(m[1]))
		}
	}
	if parsed == nil {
		trimmed := strings.TrimSpace(text)
		if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
			parsed = tryParse(trimmed)
		}
	}

	// Some model runs return the whole object JSON-encoded inside the
	// description field.
	if descr, ok := parsed["description"].(string); ok {
		if inner := tryParse(descr); inner != nil {
			parsed = inner
		}
	}

	out := CityData{
		Description: asString(parsed["description"]),
		FoodPrice:   asPrice(parsed["foodPrice"]),
		HotelPrice:  asPrice(parsed["hotelPrice"]),
		Places:      []Place{},
	}

	if places, ok := parsed["places"].([]interface{}); ok {
		for _, raw := range places {
			p, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			place := Place{
				Name:  asString(p["name"]),
				Price: asPrice(p["price"]),
				Link:  asString(p["link"]),
			}
			if place.Name == "" {
				place.Name = "Без названия"
			}
			if strings.TrimSpace(place.Link) == "" {
				place.Link = "#"
			}
			out.Places = append(out.Places, place)
		}
	}

	return out
}

func tryParse(s string) map[string]interface{} {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil
	}
	return m
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asPrice(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		if n < 0 {
			return 0
		}
		return n
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || f < 0 {
			return 0
		}
		return f
	default:
		return 0
	}
}
