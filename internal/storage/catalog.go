package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/s/coursehub/internal/models"
	"gorm.io/gorm"
)

// Границы цены по умолчанию для каталога.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 500
)

const (
	listCacheTTL   = 10 * time.Minute
	detailCacheTTL = time.Hour
)

// CatalogFilter — разобранные параметры фильтрации/сортировки каталога.
type CatalogFilter struct {
	Category string
	Search   string
	MinPrice float64
	MaxPrice float64
	Sort     string
}

// ParseCatalogFilter извлекает фильтр из query-строки. Некорректные числа
// и неизвестные ключи сортировки молча заменяются дефолтами.
func ParseCatalogFilter(values url.Values) CatalogFilter {
	f := CatalogFilter{
		Category: values.Get("category"),
		Search:   values.Get("search"),
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
		Sort:     values.Get("sort"),
	}

	if v, err := strconv.ParseFloat(values.Get("minPrice"), 64); err == nil && v >= 0 {
		f.MinPrice = v
	}
	if v, err := strconv.ParseFloat(values.Get("maxPrice"), 64); err == nil && v >= 0 {
		f.MaxPrice = v
	}
	return f
}

// orderClause переводит ключ сортировки в ORDER BY. Неизвестный ключ —
// это newest (по дате создания, сначала свежие).
func (f CatalogFilter) orderClause() string {
	switch f.Sort {
	case "oldest":
		return "created_at asc"
	case "price_low":
		return "price asc"
	case "price_high":
		return "price desc"
	case "title_asc":
		return "title asc"
	case "title_desc":
		return "title desc"
	default: // "newest" и все остальное
		return "created_at desc"
	}
}

func (f CatalogFilter) cacheKey() string {
	return fmt.Sprintf("courses:list:%s:%s:%g:%g:%s", f.Category, f.Search, f.MinPrice, f.MaxPrice, f.Sort)
}

// ListPublishedCourses возвращает опубликованные курсы по фильтру, с
// подгруженными категориями, без пагинации. При наличии redis результат
// читается/кладется в кеш (TTL 10 минут).
func ListPublishedCourses(ctx context.Context, db *gorm.DB, rdb *redis.Client, f CatalogFilter) ([]models.Course, error) {
	key := f.cacheKey()

	// 1. Кеш
	if rdb != nil {
		if val, err := rdb.Get(ctx, key).Result(); err == nil {
			var cached []models.Course
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	// 2. БД
	q := db.Model(&models.Course{}).
		Where("courses.is_published = ?", true).
		Where("courses.price >= ? AND courses.price <= ?", f.MinPrice, f.MaxPrice)

	if f.Category != "" {
		q = q.Joins("JOIN course_categories cc ON cc.course_id = courses.id").
			Joins("JOIN categories cat ON cat.id = cc.category_id").
			Where("cat.name = ?", f.Category)
	}

	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(courses.title) LIKE ? OR LOWER(courses.description) LIKE ?", pattern, pattern)
	}

	var courses []models.Course
	if err := q.Preload("Categories").Order(f.orderClause()).Find(&courses).Error; err != nil {
		return nil, err
	}

	// 3. Пишем в кеш
	if rdb != nil {
		if data, err := json.Marshal(courses); err == nil {
			rdb.Set(ctx, key, data, listCacheTTL)
		}
	}

	return courses, nil
}

// GetPublishedCourse возвращает опубликованный курс с опубликованными
// уроками (по позиции) и категориями. Деталь кешируется на час.
func GetPublishedCourse(ctx context.Context, db *gorm.DB, rdb *redis.Client, courseID uint) (*models.Course, error) {
	key := detailCacheKey(courseID)

	if rdb != nil {
		if val, err := rdb.Get(ctx, key).Result(); err == nil {
			var cached models.Course
			if json.Unmarshal([]byte(val), &cached) == nil {
				return &cached, nil
			}
		}
	}

	var course models.Course
	err := db.Where("id = ? AND is_published = ?", courseID, true).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_published = ?", true).Order("position asc")
		}).
		Preload("Categories").
		First(&course).Error
	if err != nil {
		return nil, err
	}

	if rdb != nil {
		if data, err := json.Marshal(course); err == nil {
			rdb.Set(ctx, key, data, detailCacheTTL)
		}
	}

	return &course, nil
}

// ListCategories — все категории по имени, для фильтров и форм админки.
func ListCategories(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := db.Order("name asc").Find(&categories).Error
	return categories, err
}

// InvalidateCourse сбрасывает кеш детали курса после админских правок.
// Списки не трогаем: у них короткий TTL, точечная инвалидация по маске
// не стоит своей сложности.
func InvalidateCourse(ctx context.Context, rdb *redis.Client, courseID uint) {
	if rdb != nil {
		rdb.Del(ctx, detailCacheKey(courseID))
	}
}

func detailCacheKey(courseID uint) string {
	return fmt.Sprintf("course:detail:%d", courseID)
}
