package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"balance/controllers"
	"balance/services"

	"github.com/gin-gonic/gin"
)

type mockRecognizer struct {
	detectFn func(ctx context.Context, image []byte) ([]services.FoodLabel, error)
}

func (m *mockRecognizer) DetectFood(ctx context.Context, image []byte) ([]services.FoodLabel, error) {
	if m.detectFn != nil {
		return m.detectFn(ctx, image)
	}
	return nil, nil
}

type mockLookup struct {
	lookupFn func(name string) (string, services.NutritionInfo, float64, bool)
}

func (m *mockLookup) Lookup(name string) (string, services.NutritionInfo, float64, bool) {
	if m.lookupFn != nil {
		return m.lookupFn(name)
	}
	return "", services.NutritionInfo{}, 0, false
}

func analyzeRequest(t *testing.T, r *gin.Engine) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("file", "meal.jpg")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("fake-image-bytes"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/food/analyze", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func newAnalyzeRouter(rec services.FoodRecognizer, nut services.NutritionLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/food/analyze", controllers.NewFoodController(rec, nut).Analyze)
	return r
}

func TestAnalyzeRanksAndSelects(t *testing.T) {
	recognizer := &mockRecognizer{
		detectFn: func(_ context.Context, _ []byte) ([]services.FoodLabel, error) {
			return []services.FoodLabel{
				{Name: "Rice", Confidence: 0.9},
				{Name: "Salad", Confidence: 0.95},
				{Name: "Plate", Confidence: 0.99},
			}, nil
		},
	}
	lookup := &mockLookup{
		lookupFn: func(name string) (string, services.NutritionInfo, float64, bool) {
			switch name {
			case "Rice":
				return "rice", services.NutritionInfo{Calories: 300}, 1.0, true
			case "Salad":
				return "salad", services.NutritionInfo{Calories: 150}, 0.7, true
			default:
				return "", services.NutritionInfo{}, 0, false
			}
		},
	}

	w := analyzeRequest(t, newAnalyzeRouter(recognizer, lookup))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}

	var out struct {
		FoundFoods []struct {
			Name          string `json:"name"`
			NutritionInfo struct {
				Calories float64 `json:"calories"`
			} `json:"nutrition_info"`
		} `json:"found_foods"`
		SelectedFood struct {
			Name string `json:"name"`
		} `json:"selected_food"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad body: %v", err)
	}

	if len(out.FoundFoods) != 2 {
		t.Fatalf("found %d foods, want 2", len(out.FoundFoods))
	}
	// rice: 0.9*0.4 + 1.0*0.6 = 0.96; salad: 0.95*0.4 + 0.7*0.6 = 0.80
	if out.SelectedFood.Name != "rice" {
		t.Fatalf("selected = %q, want rice", out.SelectedFood.Name)
	}
	if out.FoundFoods[0].NutritionInfo.Calories != 300 {
		t.Fatalf("top food calories = %v", out.FoundFoods[0].NutritionInfo.Calories)
	}
}

func TestAnalyzeNoFoodDetected(t *testing.T) {
	w := analyzeRequest(t, newAnalyzeRouter(&mockRecognizer{}, &mockLookup{}))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var out struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Error == "" {
		t.Fatal("expected an error message")
	}
}

func TestAnalyzeNoNutritionMatch(t *testing.T) {
	recognizer := &mockRecognizer{
		detectFn: func(_ context.Context, _ []byte) ([]services.FoodLabel, error) {
			return []services.FoodLabel{{Name: "Table", Confidence: 0.9}}, nil
		},
	}

	w := analyzeRequest(t, newAnalyzeRouter(recognizer, &mockLookup{}))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var out struct {
		Error          string `json:"error"`
		DetectedLabels []struct {
			Name string `json:"name"`
		} `json:"detected_labels"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Error == "" {
		t.Fatal("expected an error message")
	}
	if len(out.DetectedLabels) != 1 {
		t.Fatalf("detected_labels = %d, want 1", len(out.DetectedLabels))
	}
}

func TestAnalyzeRecognizerFailure(t *testing.T) {
	recognizer := &mockRecognizer{
		detectFn: func(_ context.Context, _ []byte) ([]services.FoodLabel, error) {
			return nil, errors.New("rekognition unavailable")
		},
	}

	w := analyzeRequest(t, newAnalyzeRouter(recognizer, &mockLookup{}))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	r := newAnalyzeRouter(&mockRecognizer{}, &mockLookup{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/food/analyze", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
