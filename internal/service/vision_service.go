package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/smallwins/internal/logging"
	"github.com/smallwins/internal/nutrition"
	_ "golang.org/x/image/webp"
)

var (
	// ErrInvalidImage 图片为空、base64 非法或无法识别格式
	ErrInvalidImage = errors.New("invalid image")
	// ErrNoFoodDetected 识别结果中没有可匹配的食物
	ErrNoFoodDetected = errors.New("no food detected")
)

// maxImageBytes 限制单张图片的大小（Rekognition 内联图片上限为 5MB）
const maxImageBytes = 5 << 20

// Estimator 根据图片估算一份食物的营养，结果只是候选条目
type Estimator interface {
	Estimate(ctx context.Context, img []byte, filename string) (nutrition.Food, error)
}

// VisionService 调用主估算器，失败时退回本地估算
type VisionService struct {
	primary  Estimator
	fallback Estimator
	logger   logging.Logger
}

// NewVisionService 构造 VisionService；primary 为空时只使用本地估算
func NewVisionService(primary Estimator, logger logging.Logger) *VisionService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &VisionService{primary: primary, fallback: StubEstimator{}, logger: logger}
}

// EstimateBase64 解码 base64 或 data URI 图片并估算
func (s *VisionService) EstimateBase64(ctx context.Context, encoded, filename string) (nutrition.Food, error) {
	img, err := DecodeImagePayload(encoded)
	if err != nil {
		return nutrition.Food{}, err
	}
	return s.Estimate(ctx, img, filename)
}

// Estimate 先尝试主估算器，出错时记录警告并使用本地估算
func (s *VisionService) Estimate(ctx context.Context, img []byte, filename string) (nutrition.Food, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(img)); err != nil {
		return nutrition.Food{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	if s.primary != nil {
		food, err := s.primary.Estimate(ctx, img, filename)
		if err == nil {
			return food, nil
		}
		s.logger.Warn(ctx, "vision estimator failed, using fallback", "error", err)
	}

	return s.fallback.Estimate(ctx, img, filename)
}

// DecodeImagePayload 接受纯 base64 或 data:image/...;base64, 前缀的字符串
func DecodeImagePayload(encoded string) ([]byte, error) {
	payload := strings.TrimSpace(encoded)
	if strings.HasPrefix(payload, "data:") {
		idx := strings.Index(payload, ",")
		if idx < 0 {
			return nil, fmt.Errorf("%w: malformed data URI", ErrInvalidImage)
		}
		payload = payload[idx+1:]
	}
	if payload == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("%w: image larger than %d bytes", ErrInvalidImage, maxImageBytes)
	}
	return data, nil
}

// StubEstimator 根据图片内容哈希给出稳定的估算值：300~600 kcal、10~30 g 蛋白质
type StubEstimator struct{}

// Estimate 实现 Estimator
func (StubEstimator) Estimate(_ context.Context, img []byte, filename string) (nutrition.Food, error) {
	if len(img) == 0 {
		return nutrition.Food{}, ErrInvalidImage
	}

	h := fnv.New32a()
	h.Write(img)
	sum := h.Sum32()

	name := strings.TrimSuffix(filepath.Base(strings.TrimSpace(filename)), filepath.Ext(filename))
	if name == "" || name == "." {
		name = "Photo meal"
	}

	return nutrition.Food{
		Name:     name,
		Calories: float64(300 + sum%301),
		Protein:  float64(10 + (sum/301)%21),
	}, nil
}

// labelDetector 是 rekognition.Client 中用到的子集，便于测试替换
type labelDetector interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// RekognitionEstimator 用 AWS Rekognition 识别标签，再映射到食物目录
type RekognitionEstimator struct {
	client        labelDetector
	maxLabels     int32
	minConfidence float32
}

// NewRekognitionEstimator 从默认 AWS 凭证链创建估算器
func NewRekognitionEstimator(ctx context.Context, region string) (*RekognitionEstimator, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if strings.TrimSpace(region) != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newRekognitionEstimator(rekognition.NewFromConfig(cfg)), nil
}

func newRekognitionEstimator(client labelDetector) *RekognitionEstimator {
	return &RekognitionEstimator{client: client, maxLabels: 10, minConfidence: 75}
}

// Estimate 实现 Estimator
func (r *RekognitionEstimator) Estimate(ctx context.Context, img []byte, _ string) (nutrition.Food, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: img},
		MaxLabels:     aws.Int32(r.maxLabels),
		MinConfidence: aws.Float32(r.minConfidence),
	})
	if err != nil {
		return nutrition.Food{}, fmt.Errorf("detect labels: %w", err)
	}

	labels := make([]string, 0, len(out.Labels))
	for _, l := range out.Labels {
		labels = append(labels, aws.ToString(l.Name))
	}

	food, ok := nutrition.MatchLabels(labels)
	if !ok {
		return nutrition.Food{}, fmt.Errorf("%w: labels %v", ErrNoFoodDetected, labels)
	}
	return food, nil
}
