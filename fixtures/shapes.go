package fixtures

import "github.com/asaidimu/go-lister/core/schema"

// Dataset names, also used as collection names in a dataset.Store.
const (
	NameCatalog      = "catalog"
	NameEnrolled     = "enrolled"
	NameUsers        = "users"
	NameAdminCourses = "admin_courses"
	NamePayments     = "payments"
	NameLeaderboard  = "leaderboard"
)

func yes() *bool {
	b := true
	return &b
}

type fieldList []*schema.FieldDefinition

func (l fieldList) shape(name, idField string, searchFields ...string) *schema.Shape {
	fields := make(map[string]*schema.FieldDefinition, len(l))
	for _, f := range l {
		fields[f.Name] = f
	}
	return &schema.Shape{Name: name, IDField: idField, Fields: fields, SearchFields: searchFields}
}

func id(name string) *schema.FieldDefinition {
	return &schema.FieldDefinition{Name: name, Type: schema.FieldTypeInteger, Required: yes()}
}

func text(name string) *schema.FieldDefinition {
	return &schema.FieldDefinition{Name: name, Type: schema.FieldTypeString}
}

func number(name string) *schema.FieldDefinition {
	return &schema.FieldDefinition{Name: name, Type: schema.FieldTypeNumber}
}

func integer(name string) *schema.FieldDefinition {
	return &schema.FieldDefinition{Name: name, Type: schema.FieldTypeInteger}
}

func enum(name string, values ...any) *schema.FieldDefinition {
	return &schema.FieldDefinition{Name: name, Type: schema.FieldTypeEnum, Values: values, Required: yes()}
}

// CatalogShape describes CatalogCourse records.
func CatalogShape() *schema.Shape {
	return fieldList{
		id("id"), text("title"), text("instructor"),
		enum("category", "Development", "Design", "Business", "Data Science", "Marketing"),
		number("rating"), integer("students"), text("duration"), integer("lessons"),
		number("price"), text("thumbnail"),
		{Name: "bestseller", Type: schema.FieldTypeBoolean},
	}.shape(NameCatalog, "id", "title", "instructor")
}

// EnrolledShape describes EnrolledCourse records.
func EnrolledShape() *schema.Shape {
	return fieldList{
		id("id"), text("title"), text("instructor"), text("thumbnail"),
		number("progress"), integer("totalLessons"), integer("completedLessons"),
		number("rating"), integer("students"), text("lastAccessed"), text("category"),
		number("price"),
		enum("status", "in-progress", "completed", "not-started"),
	}.shape(NameEnrolled, "id", "title", "instructor")
}

// UserShape describes User records.
func UserShape() *schema.Shape {
	return fieldList{
		id("id"), text("name"), text("email"), text("phone"),
		enum("role", "student", "instructor", "admin"),
		enum("status", "active", "inactive"),
		text("joinDate"), integer("coursesEnrolled"), integer("coursesTaught"),
	}.shape(NameUsers, "id", "name", "email")
}

// AdminCourseShape describes AdminCourse records.
func AdminCourseShape() *schema.Shape {
	return fieldList{
		id("id"), text("title"), text("instructor"),
		integer("students"), integer("lessons"), number("rating"), number("revenue"),
		enum("status", "active", "draft", "archived"),
		text("createdDate"), text("category"),
	}.shape(NameAdminCourses, "id", "title", "instructor")
}

// PaymentShape describes Payment records. Payments are identified by a string.
func PaymentShape() *schema.Shape {
	return fieldList{
		{Name: "id", Type: schema.FieldTypeString, Required: yes()},
		text("studentName"), text("courseName"), number("amount"),
		enum("status", "completed", "pending", "failed", "refunded"),
		text("date"), text("paymentMethod"), text("transactionId"),
	}.shape(NamePayments, "id", "studentName", "courseName", "transactionId")
}

// LeaderboardShape describes LeaderboardEntry records.
func LeaderboardShape() *schema.Shape {
	return fieldList{
		id("rank"), text("name"), text("avatar"),
		integer("points"), integer("coursesCompleted"), integer("streak"), integer("averageScore"),
		text("region"),
	}.shape(NameLeaderboard, "rank", "name")
}
