package controllers

import (
	"io"
	"net/http"
	"sort"

	"balance/services"
	"balance/utils"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Recognizer services.FoodRecognizer
	Nutrition  services.NutritionLookup
}

func NewFoodController(rec services.FoodRecognizer, nut services.NutritionLookup) *FoodController {
	return &FoodController{Recognizer: rec, Nutrition: nut}
}

type foundFood struct {
	Name          string                 `json:"name"`
	OriginalLabel string                 `json:"original_label"`
	Confidence    float64                `json:"confidence"`
	Similarity    float64                `json:"menu_similarity"`
	NutritionInfo services.NutritionInfo `json:"nutrition_info"`
}

// Combined ranking weight: recognizer confidence counts less than how
// well the label matched a known food.
func (f foundFood) score() float64 {
	return f.Confidence*0.4 + f.Similarity*0.6
}

// Analyze runs the recognition pipeline on an uploaded meal photo:
// detect labels, resolve each against the food table, dedupe keeping
// the best-scoring hit per food, and rank the results. This call can
// run for a while; the client keeps its loading state until it ends.
func (h *FoodController) Analyze(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "file is required"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "failed to read file"})
		return
	}

	labels, err := h.Recognizer.DetectFood(c.Request.Context(), image)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}
	if len(labels) == 0 {
		c.JSON(http.StatusOK, gin.H{"error": "No food detected in the image"})
		return
	}

	best := make(map[string]foundFood)
	for _, label := range labels {
		food, info, similarity, ok := h.Nutrition.Lookup(label.Name)
		if !ok {
			continue
		}
		f := foundFood{
			Name:          food,
			OriginalLabel: label.Name,
			Confidence:    label.Confidence,
			Similarity:    similarity,
			NutritionInfo: info,
		}
		if prev, dup := best[food]; !dup || f.score() > prev.score() {
			best[food] = f
		}
	}

	if len(best) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"detected_labels": labels,
			"error":           "No nutrition data found for the detected food",
		})
		return
	}

	found := make([]foundFood, 0, len(best))
	for _, f := range best {
		found = append(found, f)
	}
	sort.Slice(found, func(i, j int) bool { return found[i].score() > found[j].score() })

	imageURL, err := utils.UploadMealImage(c.Request.Context(), header.Filename, image, header.Header.Get("Content-Type"))
	if err != nil {
		imageURL = "" // archiving is best effort
	}

	out := gin.H{
		"detected_labels": labels,
		"found_foods":     found,
		"selected_food":   found[0],
	}
	if imageURL != "" {
		out["image_url"] = imageURL
	}
	c.JSON(http.StatusOK, out)
}
