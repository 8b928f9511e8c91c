package services

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// FoodLabel is one candidate name detected in a meal photo.
type FoodLabel struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"` // 0..1
}

// FoodRecognizer turns raw image bytes into candidate food labels.
type FoodRecognizer interface {
	DetectFood(ctx context.Context, image []byte) ([]FoodLabel, error)
}

type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService() (*RekognitionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// DetectFood returns the top labels for a raw image.
func (r *RekognitionService) DetectFood(ctx context.Context, image []byte) ([]FoodLabel, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var labels []FoodLabel
	for _, l := range out.Labels {
		labels = append(labels, FoodLabel{
			Name:       aws.ToString(l.Name),
			Confidence: float64(aws.ToFloat32(l.Confidence)) / 100,
		})
	}
	return labels, nil
}
