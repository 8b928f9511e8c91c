package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// APIError is a non-2xx response: the status plus the server's detail
// message when the body carried one. Callers branch on the status:
// 401 means redirect to login, other 4xx surface the detail inline,
// anything else gets a generic alert.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Gateway is the single point translating page intents into HTTP
// calls against the backend origin.
type Gateway struct {
	BaseURL string
	Session *SessionStore
	HTTP    *http.Client
}

// NewGateway derives the backend origin from the current host rather
// than a hard-coded address.
func NewGateway(host string, session *SessionStore) *Gateway {
	return &Gateway{
		BaseURL: fmt.Sprintf("http://%s:8000", host),
		Session: session,
		HTTP:    &http.Client{},
	}
}

type TokenGrant struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
}

type Nutrients struct {
	Carbohydrates float64 `json:"carbohydrates"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
}

// Stats is the normalized daily aggregate. Missing fields on the wire
// (the no-meals-yet response) are folded to zero here, once, instead
// of defensively at every use site.
type Stats struct {
	BalanceScore     int
	TotalCalories    float64
	DailyCalorieGoal int
	Highlight        string
	NeedsImprovement string
	Nutrients        Nutrients
	HasMeals         bool
}

type statsWire struct {
	BalanceScore     *int     `json:"balance_score"`
	TotalCalories    *float64 `json:"total_calories"`
	DailyCalorieGoal int      `json:"daily_calorie_goal"`
	Highlight        string   `json:"highlight"`
	NeedsImprovement string   `json:"needs_improvement"`
	Nutrients        struct {
		Carbohydrates *float64 `json:"carbohydrates"`
		Protein       *float64 `json:"protein"`
		Fat           *float64 `json:"fat"`
	} `json:"nutrients"`
}

type MealEntry struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Calories  float64   `json:"calories"`
	Nutrients Nutrients `json:"nutrients"`
	Timestamp time.Time `json:"timestamp"`
}

// DayMeals groups a day's entries by meal type.
type DayMeals map[string][]MealEntry

type NewMeal struct {
	MealType      string    `json:"meal_type"`
	Timestamp     time.Time `json:"timestamp"`
	FoodName      string    `json:"food_name"`
	ServingSize   string    `json:"serving_size,omitempty"`
	Calories      float64   `json:"calories"`
	Carbohydrates float64   `json:"carbohydrates"`
	Protein       float64   `json:"protein"`
	Fat           float64   `json:"fat"`
}

type MealDetail struct {
	ID        uint      `json:"id"`
	FoodName  string    `json:"food_name"`
	MealType  string    `json:"meal_type"`
	Calories  float64   `json:"calories"`
	Nutrients Nutrients `json:"nutrients"`
	Timestamp time.Time `json:"timestamp"`
}

type MealUpdate struct {
	MealType      string  `json:"meal_type"`
	FoodName      string  `json:"food_name"`
	Calories      float64 `json:"calories"`
	Carbohydrates float64 `json:"carbohydrates"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
}

type DaySummary struct {
	TotalCalories float64 `json:"totalCalories"`
	MealCount     int     `json:"mealCount"`
	GoalMet       bool    `json:"goalMet"`
}

type StreakStats struct {
	CurrentStreak    int `json:"currentStreak"`
	LongestStreak    int `json:"longestStreak"`
	TotalPerfectDays int `json:"totalPerfectDays"`
}

type Profile struct {
	UserID           int64  `json:"user_id"`
	Email            string `json:"email"`
	FullName         string `json:"full_name"`
	DailyCalorieGoal int    `json:"daily_calorie_goal"`
}

type ProfileUpdate struct {
	FullName         string `json:"full_name,omitempty"`
	DailyCalorieGoal int    `json:"daily_calorie_goal,omitempty"`
}

type FoundFood struct {
	Name          string  `json:"name"`
	OriginalLabel string  `json:"original_label"`
	Confidence    float64 `json:"confidence"`
	Similarity    float64 `json:"menu_similarity"`
	NutritionInfo struct {
		Calories  float64            `json:"calories"`
		Nutrients map[string]float64 `json:"nutrients"`
	} `json:"nutrition_info"`
}

type AnalyzeResult struct {
	FoundFoods   []FoundFood `json:"found_foods"`
	SelectedFood *FoundFood  `json:"selected_food"`
	ImageURL     string      `json:"image_url"`
	Error        string      `json:"error"`
}

// IssueToken performs the guest-style login.
func (g *Gateway) IssueToken(ctx context.Context) (*TokenGrant, error) {
	var grant TokenGrant
	if err := g.do(ctx, http.MethodPost, "/api/v1/balance/token", nil, false, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

type RegisterInput struct {
	Email            string `json:"email,omitempty"`
	Password         string `json:"password,omitempty"`
	FullName         string `json:"full_name,omitempty"`
	DailyCalorieGoal int    `json:"daily_calorie_goal,omitempty"`
}

func (g *Gateway) Register(ctx context.Context, in RegisterInput) (*TokenGrant, error) {
	var grant TokenGrant
	if err := g.do(ctx, http.MethodPost, "/api/v1/balance/register", in, false, &grant); err != nil {
		return nil, err
	}
	return &grant, nil
}

func (g *Gateway) FetchStats(ctx context.Context) (*Stats, error) {
	var wire statsWire
	if err := g.do(ctx, http.MethodGet, "/api/v1/balance/stats", nil, true, &wire); err != nil {
		return nil, err
	}

	stats := &Stats{
		DailyCalorieGoal: wire.DailyCalorieGoal,
		Highlight:        wire.Highlight,
		NeedsImprovement: wire.NeedsImprovement,
		HasMeals:         wire.TotalCalories != nil,
	}
	if wire.BalanceScore != nil {
		stats.BalanceScore = *wire.BalanceScore
	}
	if wire.TotalCalories != nil {
		stats.TotalCalories = *wire.TotalCalories
	}
	if wire.Nutrients.Carbohydrates != nil {
		stats.Nutrients.Carbohydrates = *wire.Nutrients.Carbohydrates
	}
	if wire.Nutrients.Protein != nil {
		stats.Nutrients.Protein = *wire.Nutrients.Protein
	}
	if wire.Nutrients.Fat != nil {
		stats.Nutrients.Fat = *wire.Nutrients.Fat
	}
	return stats, nil
}

// ListMeals fetches the day's meals grouped by type. A zero date
// means today (server default).
func (g *Gateway) ListMeals(ctx context.Context, date time.Time) (DayMeals, error) {
	path := "/api/v1/balance/meals"
	if !date.IsZero() {
		path += "?date=" + url.QueryEscape(date.Format("2006-01-02"))
	}
	var meals DayMeals
	if err := g.do(ctx, http.MethodGet, path, nil, true, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func (g *Gateway) CreateMeal(ctx context.Context, meal NewMeal) (uint, error) {
	var out struct {
		MealID uint `json:"meal_id"`
	}
	if err := g.do(ctx, http.MethodPost, "/api/v1/balance/meals", meal, true, &out); err != nil {
		return 0, err
	}
	return out.MealID, nil
}

func (g *Gateway) GetMeal(ctx context.Context, id uint) (*MealDetail, error) {
	var detail MealDetail
	path := fmt.Sprintf("/api/v1/balance/meals/%d", id)
	if err := g.do(ctx, http.MethodGet, path, nil, true, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (g *Gateway) UpdateMeal(ctx context.Context, id uint, update MealUpdate) error {
	path := fmt.Sprintf("/api/v1/balance/meals/%d", id)
	return g.do(ctx, http.MethodPut, path, update, true, nil)
}

func (g *Gateway) FetchMonthly(ctx context.Context, userID string, year, month int) (map[string]DaySummary, error) {
	path := fmt.Sprintf("/api/v1/balance/monthly/%s/%d/%d", url.PathEscape(userID), year, month)
	var out map[string]DaySummary
	if err := g.do(ctx, http.MethodGet, path, nil, true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (g *Gateway) FetchStreak(ctx context.Context, userID string) (*StreakStats, error) {
	path := fmt.Sprintf("/api/v1/balance/streak/%s", url.PathEscape(userID))
	var out StreakStats
	if err := g.do(ctx, http.MethodGet, path, nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) FetchProfile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := g.do(ctx, http.MethodGet, "/api/v1/balance/profile", nil, true, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) UpdateProfile(ctx context.Context, update ProfileUpdate) error {
	return g.do(ctx, http.MethodPut, "/api/v1/balance/profile", update, true, nil)
}

// AnalyzeImage submits a meal photo for recognition. This is the one
// long-running call; no timeout is applied and the caller holds its
// loading state until it returns.
func (g *Gateway) AnalyzeImage(ctx context.Context, filename string, image io.Reader) (*AnalyzeResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, image); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.BaseURL+"/api/v1/food/analyze", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var out AnalyzeResult
	if err := g.send(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) do(ctx context.Context, method, path string, payload any, authed bool, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.BaseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+g.Session.Token())
	}

	return g.send(req, out)
}

func (g *Gateway) send(req *http.Request, out any) error {
	httpClient := g.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var detail struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(b, &detail) == nil {
			apiErr.Detail = detail.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("unexpected response body: %w", err)
	}
	return nil
}
