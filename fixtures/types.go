// Package fixtures provides the static mock data behind the dashboard screens:
// typed records, the shapes describing them and the statistics each screen
// shows.
package fixtures

// CatalogCourse is a course offered in the public catalog.
type CatalogCourse struct {
	ID         int     `json:"id"`
	Title      string  `json:"title"`
	Instructor string  `json:"instructor"`
	Category   string  `json:"category"`
	Rating     float64 `json:"rating"`
	Students   int     `json:"students"`
	Duration   string  `json:"duration"`
	Lessons    int     `json:"lessons"`
	Price      float64 `json:"price"`
	Thumbnail  string  `json:"thumbnail"`
	Bestseller bool    `json:"bestseller"`
}

// EnrolledCourse is a course on a student's "My Courses" screen.
type EnrolledCourse struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Instructor       string  `json:"instructor"`
	Thumbnail        string  `json:"thumbnail"`
	Progress         float64 `json:"progress"`
	TotalLessons     int     `json:"totalLessons"`
	CompletedLessons int     `json:"completedLessons"`
	Rating           float64 `json:"rating"`
	Students         int     `json:"students"`
	LastAccessed     string  `json:"lastAccessed"`
	Category         string  `json:"category"`
	Price            float64 `json:"price"`
	Status           string  `json:"status"`
}

// User is a platform account as listed on the admin users screen.
type User struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Role            string `json:"role"`
	Status          string `json:"status"`
	JoinDate        string `json:"joinDate"`
	CoursesEnrolled *int   `json:"coursesEnrolled,omitempty"`
	CoursesTaught   *int   `json:"coursesTaught,omitempty"`
}

// AdminCourse is a course as managed on the admin courses screen.
type AdminCourse struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Instructor  string  `json:"instructor"`
	Students    int     `json:"students"`
	Lessons     int     `json:"lessons"`
	Rating      float64 `json:"rating"`
	Revenue     float64 `json:"revenue"`
	Status      string  `json:"status"`
	CreatedDate string  `json:"createdDate"`
	Category    string  `json:"category"`
}

// Payment is a course purchase transaction.
type Payment struct {
	ID            string  `json:"id"`
	StudentName   string  `json:"studentName"`
	CourseName    string  `json:"courseName"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	Date          string  `json:"date"`
	PaymentMethod string  `json:"paymentMethod"`
	TransactionID string  `json:"transactionId"`
}

// LeaderboardEntry is one row of the global leaderboard. Rank identifies it.
type LeaderboardEntry struct {
	Rank             int    `json:"rank"`
	Name             string `json:"name"`
	Avatar           string `json:"avatar"`
	Points           int    `json:"points"`
	CoursesCompleted int    `json:"coursesCompleted"`
	Streak           int    `json:"streak"`
	AverageScore     int    `json:"averageScore"`
	Region           string `json:"region,omitempty"`
}

// SearchCourse, SearchLesson and SearchInstructor back the global search box.
type SearchCourse struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}

type SearchLesson struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
	CourseID int    `json:"courseId"`
}

type SearchInstructor struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Icon     string `json:"icon"`
}
