package storage

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s/coursehub/internal/models"
)

func TestParseCatalogFilterDefaults(t *testing.T) {
	f := ParseCatalogFilter(url.Values{})

	assert.Equal(t, "", f.Category)
	assert.Equal(t, "", f.Search)
	assert.EqualValues(t, DefaultMinPrice, f.MinPrice)
	assert.EqualValues(t, DefaultMaxPrice, f.MaxPrice)
	assert.Equal(t, "", f.Sort)
}

func TestParseCatalogFilterBadNumbersFallBack(t *testing.T) {
	values := url.Values{}
	values.Set("minPrice", "abc")
	values.Set("maxPrice", "-10")

	f := ParseCatalogFilter(values)
	assert.EqualValues(t, DefaultMinPrice, f.MinPrice)
	assert.EqualValues(t, DefaultMaxPrice, f.MaxPrice)
}

func TestOrderClause(t *testing.T) {
	cases := map[string]string{
		"newest":     "created_at desc",
		"oldest":     "created_at asc",
		"price_low":  "price asc",
		"price_high": "price desc",
		"title_asc":  "title asc",
		"title_desc": "title desc",
		"":           "created_at desc",
		"garbage":    "created_at desc",
	}
	for sort, want := range cases {
		f := CatalogFilter{Sort: sort}
		assert.Equal(t, want, f.orderClause(), "sort=%q", sort)
	}
}

func TestListPublishedCoursesHidesUnpublished(t *testing.T) {
	db := testDB(t)
	mkCourse(t, db, "Visible", 10, true)
	mkCourse(t, db, "Hidden", 10, false)

	courses, err := ListPublishedCourses(context.Background(), db, nil, CatalogFilter{MaxPrice: DefaultMaxPrice})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Visible", courses[0].Title)
}

func TestListPublishedCoursesPriceRange(t *testing.T) {
	db := testDB(t)
	mkCourse(t, db, "Cheap", 10, true)
	mkCourse(t, db, "Mid", 30, true)
	mkCourse(t, db, "Expensive", 100, true)

	courses, err := ListPublishedCourses(context.Background(), db, nil, CatalogFilter{MinPrice: 20, MaxPrice: 50})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Mid", courses[0].Title)
}

func TestListPublishedCoursesSearchCaseInsensitive(t *testing.T) {
	db := testDB(t)
	mkCourse(t, db, "Introduction to Go", 10, true)
	mkCourse(t, db, "Cooking Basics", 10, true)

	f := CatalogFilter{Search: "INTRODUCTION", MaxPrice: DefaultMaxPrice}
	courses, err := ListPublishedCourses(context.Background(), db, nil, f)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Introduction to Go", courses[0].Title)
}

func TestListPublishedCoursesByCategory(t *testing.T) {
	db := testDB(t)
	course := mkCourse(t, db, "Go Course", 10, true)
	mkCourse(t, db, "Unrelated", 10, true)

	category := models.Category{Name: "Programming"}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&models.CourseCategory{CourseID: course.ID, CategoryID: category.ID}).Error)

	f := CatalogFilter{Category: "Programming", MaxPrice: DefaultMaxPrice}
	courses, err := ListPublishedCourses(context.Background(), db, nil, f)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Go Course", courses[0].Title)

	f.Category = "Design"
	courses, err = ListPublishedCourses(context.Background(), db, nil, f)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestListPublishedCoursesSortOrders(t *testing.T) {
	db := testDB(t)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	old := models.Course{Title: "Alpha", Price: 30, IsPublished: true, CreatedAt: base}
	fresh := models.Course{Title: "Zulu", Price: 10, IsPublished: true, CreatedAt: base.Add(time.Hour)}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&fresh).Error)

	cases := map[string]string{
		"newest":     "Zulu",
		"oldest":     "Alpha",
		"price_low":  "Zulu",
		"price_high": "Alpha",
		"title_asc":  "Alpha",
		"title_desc": "Zulu",
	}
	for sort, wantFirst := range cases {
		f := CatalogFilter{Sort: sort, MaxPrice: DefaultMaxPrice}
		courses, err := ListPublishedCourses(context.Background(), db, nil, f)
		require.NoError(t, err)
		require.Len(t, courses, 2, "sort=%q", sort)
		assert.Equal(t, wantFirst, courses[0].Title, "sort=%q", sort)
	}
}

func TestGetPublishedCourseLoadsPublishedLessonsInOrder(t *testing.T) {
	db := testDB(t)
	course := mkCourse(t, db, "Course", 10, true)
	mkLesson(t, db, course.ID, 2, true)
	mkLesson(t, db, course.ID, 1, true)
	mkLesson(t, db, course.ID, 3, false)

	got, err := GetPublishedCourse(context.Background(), db, nil, course.ID)
	require.NoError(t, err)
	require.Len(t, got.Lessons, 2)
	assert.Equal(t, 1, got.Lessons[0].Position)
	assert.Equal(t, 2, got.Lessons[1].Position)
}

func TestGetPublishedCourseRejectsDraft(t *testing.T) {
	db := testDB(t)
	course := mkCourse(t, db, "Draft", 10, false)

	_, err := GetPublishedCourse(context.Background(), db, nil, course.ID)
	assert.Error(t, err)
}

func TestListCategoriesSortedByName(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Create(&models.Category{Name: "Design"}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "Backend"}).Error)

	categories, err := ListCategories(db)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Backend", categories[0].Name)
	assert.Equal(t, "Design", categories[1].Name)
}
