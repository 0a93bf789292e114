package inquiries

import (
	"context"
	"ctoc/src/models"
	"ctoc/src/types"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const statsCacheKey = "inquiries:stats"
const statsCacheTTL = 10 * time.Minute

// Store persists buyer/seller inquiries and serves the aggregate counters the
// dashboard reads. Counters are cached in redis and refreshed by a scheduled
// job.
type Store struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewStore(db *gorm.DB, rdb *redis.Client) *Store {
	return &Store{db: db, rdb: rdb}
}

func (s *Store) Create(ctx context.Context, body *types.CreateInquiryRequestBody) (*models.Inquiry, error) {
	contactType := body.ContactType
	if contactType == "" {
		contactType = "phone"
		if strings.Contains(body.Contact, "@") {
			contactType = "email"
		}
	}
	inquiry := models.Inquiry{
		Contact:     body.Contact,
		City:        body.City,
		Category:    body.Category,
		ContactType: contactType,
	}
	switch body.Category {
	case types.INQUIRY_PROPERTIES:
		inquiry.PropertyType = body.PropertyType
		inquiry.UserType = body.UserType
	case types.INQUIRY_CARS:
		inquiry.CarBrand = body.CarBrand
	}
	if err := s.db.WithContext(ctx).Create(&inquiry).Error; err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (s *Store) List(ctx context.Context) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&inquiries).
		Error
	return inquiries, err
}

func (s *Store) ListByCategory(ctx context.Context, category types.InquiryCategory) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := s.db.WithContext(ctx).
		Where(&models.Inquiry{Category: category}).
		Order("created_at DESC").
		Find(&inquiries).
		Error
	return inquiries, err
}

func (s *Store) ListByCity(ctx context.Context, city string) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := s.db.WithContext(ctx).
		Where(&models.Inquiry{City: city}).
		Order("created_at DESC").
		Find(&inquiries).
		Error
	return inquiries, err
}

func (s *Store) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Inquiry{}, id).Error
}

// Stats serves the cached counters when present, otherwise computes and
// caches them.
func (s *Store) Stats(ctx context.Context) (*types.InquiryStats, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, statsCacheKey).Result()
		if err == nil {
			var stats types.InquiryStats
			if err := json.Unmarshal([]byte(cached), &stats); err == nil {
				return &stats, nil
			}
		} else if err != redis.Nil {
			log.Printf("Error retrieving cached stats: %s\n", err.Error())
		}
	}
	return s.RefreshStats(ctx)
}

// RefreshStats recomputes the counters and replaces the cache entry.
func (s *Store) RefreshStats(ctx context.Context) (*types.InquiryStats, error) {
	var inquiries []models.Inquiry
	if err := s.db.WithContext(ctx).Find(&inquiries).Error; err != nil {
		return nil, err
	}
	stats := types.InquiryStats{
		CategoryStats: map[types.InquiryCategory]int{
			types.INQUIRY_PROPERTIES: 0,
			types.INQUIRY_CARS:       0,
		},
		CityStats:        map[string]int{},
		ContactTypeStats: map[string]int{"email": 0, "phone": 0},
	}
	for _, inquiry := range inquiries {
		stats.TotalInquiries++
		if _, ok := stats.CategoryStats[inquiry.Category]; ok {
			stats.CategoryStats[inquiry.Category]++
		}
		stats.CityStats[inquiry.City]++
		if inquiry.ContactType == "email" {
			stats.ContactTypeStats["email"]++
		} else {
			stats.ContactTypeStats["phone"]++
		}
	}
	if s.rdb != nil {
		payload, _ := json.Marshal(&stats)
		if err := s.rdb.SetEx(ctx, statsCacheKey, string(payload), statsCacheTTL).Err(); err != nil {
			log.Printf("Error caching stats: %s\n", err.Error())
		}
	}
	return &stats, nil
}
