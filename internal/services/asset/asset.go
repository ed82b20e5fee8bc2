// Package services содержит бизнес-логику учёта имущества зала.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/gym-backoffice/internal/lib/domerr"
	"github.com/magabrotheeeer/gym-backoffice/internal/models"
)

// AssetRepository определяет методы для работы с имуществом в хранилище.
type AssetRepository interface {
	// CreateAsset добавляет единицу имущества и возвращает её ID.
	CreateAsset(ctx context.Context, a models.Asset) (int, error)
	// GetAsset возвращает единицу имущества по ID.
	GetAsset(ctx context.Context, id int) (*models.Asset, error)
	// ListAssets возвращает имущество с пагинацией.
	ListAssets(ctx context.Context, limit, offset int) ([]*models.Asset, error)
	// UpdateAsset обновляет единицу имущества по ID.
	UpdateAsset(ctx context.Context, a models.Asset, id int) (int, error)
	// RemoveAsset удаляет единицу имущества по ID.
	RemoveAsset(ctx context.Context, id int) (int, error)
}

// AssetService реализует бизнес-логику учёта имущества.
type AssetService struct {
	repo AssetRepository
	log  *slog.Logger
}

// NewAssetService создает новый экземпляр AssetService.
func NewAssetService(repo AssetRepository, log *slog.Logger) *AssetService {
	return &AssetService{repo: repo, log: log}
}

func assetFromRequest(req models.DummyAsset) (models.Asset, error) {
	acquisitionDate, err := time.Parse("02-01-2006", req.AcquisitionDate)
	if err != nil {
		return models.Asset{}, domerr.Wrap(err, domerr.CodeBadRequest, "invalid acquisition date")
	}
	status := req.Status
	if status == "" {
		status = models.AssetStatusActive
	}
	return models.Asset{
		Name:            req.Name,
		AcquisitionDate: acquisitionDate,
		Value:           req.Value,
		Status:          status,
		Location:        req.Location,
		Description:     req.Description,
	}, nil
}

// Create добавляет единицу имущества.
func (s *AssetService) Create(ctx context.Context, req models.DummyAsset) (int, error) {
	asset, err := assetFromRequest(req)
	if err != nil {
		return 0, err
	}
	id, err := s.repo.CreateAsset(ctx, asset)
	if err != nil {
		return 0, err
	}
	s.log.Info("registered asset", slog.Int("id", id), slog.String("name", asset.Name))
	return id, nil
}

// Read возвращает единицу имущества по ID.
func (s *AssetService) Read(ctx context.Context, id int) (*models.Asset, error) {
	return s.repo.GetAsset(ctx, id)
}

// List возвращает имущество с пагинацией.
func (s *AssetService) List(ctx context.Context, limit, offset int) ([]*models.Asset, error) {
	return s.repo.ListAssets(ctx, limit, offset)
}

// Update обновляет единицу имущества по ID.
func (s *AssetService) Update(ctx context.Context, req models.DummyAsset, id int) (int, error) {
	asset, err := assetFromRequest(req)
	if err != nil {
		return 0, err
	}
	return s.repo.UpdateAsset(ctx, asset, id)
}

// Remove удаляет единицу имущества по ID.
func (s *AssetService) Remove(ctx context.Context, id int) (int, error) {
	return s.repo.RemoveAsset(ctx, id)
}
