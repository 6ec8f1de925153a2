package images

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
)

// UnsplashClient fetches a fallback landscape photo for a city. Failures
// are recoverable; callers substitute a placeholder image.
type UnsplashClient struct {
	AccessKey string
}

func NewUnsplashFromEnv() *UnsplashClient {
	return &UnsplashClient{AccessKey: os.Getenv("UNSPLASH_ACCESS_KEY")}
}

type searchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
			Small   string `json:"small"`
		} `json:"urls"`
	} `json:"results"`
}

// SearchCityPhoto returns the URL of the first landscape photo matching
// the city name, or empty when nothing suitable is found. Cyrillic city
// names are transliterated first since the search index is latin.
func (u *UnsplashClient) SearchCityPhoto(ctx context.Context, city string) (string, error) {
	if u.AccessKey == "" {
		return "", nil
	}

	q := url.Values{}
	q.Set("query", Transliterate(city))
	q.Set("orientation", "landscape")
	q.Set("per_page", "1")
	q.Set("client_id", u.AccessKey)

	endpoint := "https://api.unsplash.com/search/photos?" + q.Encode()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if res.StatusCode >= 300 {
		return "", &httpError{Status: res.StatusCode, Body: string(body)}
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if len(out.Results) == 0 {
		return "", nil
	}
	if out.Results[0].URLs.Regular != "" {
		return out.Results[0].URLs.Regular, nil
	}
	return out.Results[0].URLs.Small, nil
}

type httpError struct {
	Status int
	Body   string
}

func (e *httpError) Error() string {
	return "unsplash http error " + strconv.Itoa(e.Status)
}
