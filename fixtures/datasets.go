package fixtures

import (
	"fmt"

	"github.com/asaidimu/go-lister/core/dataset"
	"github.com/asaidimu/go-lister/core/query"
	"github.com/asaidimu/go-lister/core/schema"
	"github.com/asaidimu/go-lister/core/search"
	"github.com/asaidimu/go-lister/utils"
	"go.uber.org/zap"
)

// Dataset bundles everything a list screen needs to know about one collection.
type Dataset struct {
	Shape      *schema.Shape
	Noun       string
	LabelField string
	Records    []schema.Record
	// Stats are the summary figures shown above the list.
	Stats       []query.AggregateSpec
	DefaultSort *query.SortSpec
}

// Options returns the dataset.Options matching d.
func (d Dataset) Options(logger *zap.Logger) dataset.Options {
	return dataset.Options{Noun: d.Noun, LabelField: d.LabelField, Logger: logger}
}

func records[T any](name string, items []T) ([]schema.Record, error) {
	out, err := utils.StructsToRecords(items)
	if err != nil {
		return nil, fmt.Errorf("fixtures %s: %w", name, err)
	}
	return out, nil
}

func where(field string, value any) query.FilterCriteria {
	return query.FilterCriteria{field: value}
}

// CatalogStats, EnrolledStats, UserStats, AdminCourseStats and PaymentStats are
// the summary figures of each screen.
func CatalogStats() []query.AggregateSpec {
	return []query.AggregateSpec{
		query.Count("shown"),
		query.CountWhere("bestsellers", where("bestseller", true)).Global(),
		query.Avg("avgRating", "rating").Global(),
	}
}

func EnrolledStats() []query.AggregateSpec {
	return []query.AggregateSpec{
		query.Count("total").Global(),
		query.CountWhere("inProgress", where("status", "in-progress")).Global(),
		query.CountWhere("completed", where("status", "completed")).Global(),
		query.Avg("avgProgress", "progress").Global(),
	}
}

func UserStats() []query.AggregateSpec {
	return []query.AggregateSpec{
		query.Count("total").Global(),
		query.CountWhere("students", where("role", "student")).Global(),
		query.CountWhere("instructors", where("role", "instructor")).Global(),
		query.CountWhere("active", where("status", "active")).Global(),
		query.Percentage("activePercent", where("status", "active")).Global(),
	}
}

func AdminCourseStats() []query.AggregateSpec {
	return []query.AggregateSpec{
		query.Sum("totalStudents", "students").Global(),
		query.Sum("totalRevenue", "revenue").Global(),
		query.CountWhere("activeCourses", where("status", "active")).Global(),
	}
}

func PaymentStats() []query.AggregateSpec {
	return []query.AggregateSpec{
		query.Sum("totalRevenue", "amount").Filter(where("status", "completed")).Global(),
		query.Sum("pendingAmount", "amount").Filter(where("status", "pending")).Global(),
		query.Avg("avgTransaction", "amount").Filter(where("status", "completed")).Global(),
		query.CountWhere("completed", where("status", "completed")).Global(),
		query.CountWhere("pending", where("status", "pending")).Global(),
		query.CountWhere("failed", where("status", "failed")).Global(),
		query.CountWhere("refunded", where("status", "refunded")).Global(),
		query.Percentage("successRate", where("status", "completed")).Global(),
	}
}

// Datasets returns every dashboard dataset in display order.
func Datasets() ([]Dataset, error) {
	catalog, err := records(NameCatalog, CatalogCourses())
	if err != nil {
		return nil, err
	}
	enrolled, err := records(NameEnrolled, EnrolledCourses())
	if err != nil {
		return nil, err
	}
	users, err := records(NameUsers, Users())
	if err != nil {
		return nil, err
	}
	adminCourses, err := records(NameAdminCourses, AdminCourses())
	if err != nil {
		return nil, err
	}
	payments, err := records(NamePayments, Payments())
	if err != nil {
		return nil, err
	}
	leaders, err := records(NameLeaderboard, Leaderboard())
	if err != nil {
		return nil, err
	}

	return []Dataset{
		{Shape: CatalogShape(), Noun: "Course", LabelField: "title", Records: catalog, Stats: CatalogStats()},
		{Shape: EnrolledShape(), Noun: "Course", LabelField: "title", Records: enrolled, Stats: EnrolledStats()},
		{Shape: UserShape(), Noun: "User", LabelField: "name", Records: users, Stats: UserStats()},
		{Shape: AdminCourseShape(), Noun: "Course", LabelField: "title", Records: adminCourses, Stats: AdminCourseStats()},
		{Shape: PaymentShape(), Noun: "Payment", LabelField: "id", Records: payments, Stats: PaymentStats()},
		{
			Shape: LeaderboardShape(), Noun: "Entry", LabelField: "name", Records: leaders,
			DefaultSort: &query.SortSpec{Field: "points", Direction: query.SortDirectionDesc, Rule: query.SortRuleNumeric},
		},
	}, nil
}

// Find returns the dataset with the given name.
func Find(datasets []Dataset, name string) (Dataset, bool) {
	for _, d := range datasets {
		if d.Shape.Name == name {
			return d, true
		}
	}
	return Dataset{}, false
}

// Load creates one collection per dataset in store.
func Load(store *dataset.Store, datasets []Dataset, logger *zap.Logger) error {
	for _, d := range datasets {
		if _, err := store.Create(d.Shape, d.Records, d.Options(logger)); err != nil {
			return fmt.Errorf("failed to load %s: %w", d.Shape.Name, err)
		}
	}
	return nil
}

// NewStore returns a store holding every dashboard dataset.
func NewStore(logger *zap.Logger) (*dataset.Store, error) {
	datasets, err := Datasets()
	if err != nil {
		return nil, err
	}
	store, err := dataset.NewStore(logger)
	if err != nil {
		return nil, err
	}
	if err := Load(store, datasets, logger); err != nil {
		return nil, err
	}
	return store, nil
}

// SearchCollections returns the collections of the global search box in
// priority order: courses, then lessons, then instructors.
func SearchCollections() ([]search.Collection, error) {
	courses, err := records("search courses", SearchCourses())
	if err != nil {
		return nil, err
	}
	lessons, err := records("search lessons", SearchLessons())
	if err != nil {
		return nil, err
	}
	instructors, err := records("search instructors", SearchInstructors())
	if err != nil {
		return nil, err
	}

	return []search.Collection{
		{Name: "courses", Category: "Course", Icon: "📚", Target: "/course/{id}", Records: courses},
		{Name: "lessons", Category: "Lesson", Icon: "📹", Target: "/lesson/{courseId}/{id}", Records: lessons},
		{Name: "instructors", Category: "Instructor", Icon: "👨‍🏫", TitleField: "name", Records: instructors},
	}, nil
}

// NewSearchIndex returns an index over SearchCollections.
func NewSearchIndex(logger *zap.Logger, limit int) (*search.Index, error) {
	collections, err := SearchCollections()
	if err != nil {
		return nil, err
	}
	index := search.NewIndex(logger, limit)
	for _, c := range collections {
		if err := index.Register(c); err != nil {
			return nil, err
		}
	}
	return index, nil
}
