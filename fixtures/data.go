package fixtures

func intPtr(i int) *int { return &i }

// CatalogCourses returns the public course catalog.
func CatalogCourses() []CatalogCourse {
	return []CatalogCourse{
		{ID: 1, Title: "Complete Web Development Bootcamp", Instructor: "Dr. Sarah Chen", Category: "Development", Rating: 4.9, Students: 12500, Duration: "48 hours", Lessons: 156, Price: 89.99, Thumbnail: "🌐", Bestseller: true},
		{ID: 2, Title: "UI/UX Design Masterclass", Instructor: "Jane Williams", Category: "Design", Rating: 4.8, Students: 8900, Duration: "32 hours", Lessons: 98, Price: 79.99, Thumbnail: "🎨", Bestseller: true},
		{ID: 3, Title: "Data Science with Python", Instructor: "Prof. Michael Brown", Category: "Data Science", Rating: 4.7, Students: 6700, Duration: "40 hours", Lessons: 120, Price: 99.99, Thumbnail: "📊"},
		{ID: 4, Title: "Digital Marketing Strategy", Instructor: "Emily Davis", Category: "Marketing", Rating: 4.6, Students: 5400, Duration: "24 hours", Lessons: 72, Price: 69.99, Thumbnail: "📱"},
		{ID: 5, Title: "Business Analytics Fundamentals", Instructor: "Robert Wilson", Category: "Business", Rating: 4.8, Students: 4200, Duration: "28 hours", Lessons: 84, Price: 74.99, Thumbnail: "📈"},
		{ID: 6, Title: "React & TypeScript Advanced", Instructor: "Alex Johnson", Category: "Development", Rating: 4.9, Students: 3800, Duration: "36 hours", Lessons: 108, Price: 94.99, Thumbnail: "⚛️", Bestseller: true},
	}
}

// EnrolledCourses returns the courses of the signed-in student, most recently
// accessed first.
func EnrolledCourses() []EnrolledCourse {
	return []EnrolledCourse{
		{ID: 1, Title: "Complete Web Development Bootcamp", Instructor: "Dr. Sarah Chen", Thumbnail: "🌐", Progress: 65, TotalLessons: 156, CompletedLessons: 101, Rating: 4.9, Students: 12500, LastAccessed: "2 hours ago", Category: "Development", Price: 89.99, Status: "in-progress"},
		{ID: 2, Title: "Data Science with Python", Instructor: "Prof. Michael Brown", Thumbnail: "📊", Progress: 30, TotalLessons: 120, CompletedLessons: 36, Rating: 4.7, Students: 6700, LastAccessed: "3 days ago", Category: "Data Science", Price: 99.99, Status: "in-progress"},
		{ID: 3, Title: "UI/UX Design Masterclass", Instructor: "Jane Williams", Thumbnail: "🎨", Progress: 85, TotalLessons: 98, CompletedLessons: 83, Rating: 4.8, Students: 8900, LastAccessed: "1 day ago", Category: "Design", Price: 79.99, Status: "in-progress"},
		{ID: 4, Title: "React & TypeScript Advanced", Instructor: "Alex Johnson", Thumbnail: "⚛️", Progress: 100, TotalLessons: 108, CompletedLessons: 108, Rating: 4.9, Students: 3800, LastAccessed: "1 week ago", Category: "Development", Price: 94.99, Status: "completed"},
		{ID: 5, Title: "Digital Marketing Strategy", Instructor: "Emily Davis", Thumbnail: "📱", Progress: 0, TotalLessons: 72, CompletedLessons: 0, Rating: 4.6, Students: 5400, LastAccessed: "Never", Category: "Marketing", Price: 69.99, Status: "not-started"},
		{ID: 6, Title: "Business Analytics Fundamentals", Instructor: "Robert Wilson", Thumbnail: "📈", Progress: 45, TotalLessons: 84, CompletedLessons: 38, Rating: 4.8, Students: 4200, LastAccessed: "5 days ago", Category: "Business", Price: 74.99, Status: "in-progress"},
	}
}

// Users returns the platform accounts. Two of the six are inactive.
func Users() []User {
	return []User{
		{ID: 1, Name: "Alex Johnson", Email: "alex@example.com", Phone: "+1 (555) 123-4567", Role: "student", Status: "active", JoinDate: "2024-01-15", CoursesEnrolled: intPtr(5)},
		{ID: 2, Name: "Dr. Sarah Chen", Email: "sarah@example.com", Phone: "+1 (555) 234-5678", Role: "instructor", Status: "active", JoinDate: "2023-06-20", CoursesTaught: intPtr(3)},
		{ID: 3, Name: "Michael Brown", Email: "michael@example.com", Phone: "+1 (555) 345-6789", Role: "student", Status: "active", JoinDate: "2024-03-10", CoursesEnrolled: intPtr(2)},
		{ID: 4, Name: "Jane Williams", Email: "jane@example.com", Phone: "+1 (555) 456-7890", Role: "instructor", Status: "active", JoinDate: "2023-11-05", CoursesTaught: intPtr(2)},
		{ID: 5, Name: "David Miller", Email: "david@example.com", Phone: "+1 (555) 567-8901", Role: "student", Status: "inactive", JoinDate: "2024-02-28", CoursesEnrolled: intPtr(1)},
		{ID: 6, Name: "Emma Davis", Email: "emma@example.com", Phone: "+1 (555) 678-9012", Role: "student", Status: "inactive", JoinDate: "2024-04-12", CoursesEnrolled: intPtr(8)},
	}
}

// AdminCourses returns the courses managed by administrators.
func AdminCourses() []AdminCourse {
	return []AdminCourse{
		{ID: 1, Title: "Complete Web Development Bootcamp", Instructor: "Dr. Sarah Chen", Students: 1250, Lessons: 156, Rating: 4.9, Revenue: 12500, Status: "active", CreatedDate: "2023-06-15", Category: "Development"},
		{ID: 2, Title: "Data Science Fundamentals", Instructor: "Prof. Michael Brown", Students: 890, Lessons: 132, Rating: 4.7, Revenue: 8900, Status: "active", CreatedDate: "2023-08-20", Category: "Data Science"},
		{ID: 3, Title: "UI/UX Design Principles", Instructor: "Jane Williams", Students: 650, Lessons: 98, Rating: 4.8, Revenue: 6500, Status: "active", CreatedDate: "2023-11-10", Category: "Design"},
		{ID: 4, Title: "Advanced Python Programming", Instructor: "Dr. Sarah Chen", Students: 420, Lessons: 85, Rating: 4.6, Revenue: 4200, Status: "active", CreatedDate: "2024-02-01", Category: "Development"},
		{ID: 5, Title: "Mobile App Development", Instructor: "Prof. Michael Brown", Status: "draft", CreatedDate: "2024-04-15", Category: "Development"},
		{ID: 6, Title: "Digital Marketing Basics", Instructor: "Jane Williams", Students: 780, Lessons: 64, Rating: 4.5, Revenue: 7800, Status: "active", CreatedDate: "2024-01-20", Category: "Business"},
	}
}

// Payments returns the payment transactions, newest first.
func Payments() []Payment {
	return []Payment{
		{ID: "PAY001", StudentName: "Alex Johnson", CourseName: "Web Development Bootcamp", Amount: 89.99, Status: "completed", Date: "2024-06-15", PaymentMethod: "Credit Card", TransactionID: "txn_1234567890"},
		{ID: "PAY002", StudentName: "Emma Davis", CourseName: "Data Science Fundamentals", Amount: 79.99, Status: "completed", Date: "2024-06-14", PaymentMethod: "PayPal", TransactionID: "txn_1234567891"},
		{ID: "PAY003", StudentName: "Michael Brown", CourseName: "UI/UX Design Principles", Amount: 69.99, Status: "pending", Date: "2024-06-14", PaymentMethod: "Credit Card", TransactionID: "txn_1234567892"},
		{ID: "PAY004", StudentName: "Sarah Wilson", CourseName: "Advanced Python Programming", Amount: 99.99, Status: "completed", Date: "2024-06-13", PaymentMethod: "Credit Card", TransactionID: "txn_1234567893"},
		{ID: "PAY005", StudentName: "John Smith", CourseName: "Digital Marketing Basics", Amount: 49.99, Status: "failed", Date: "2024-06-13", PaymentMethod: "Credit Card", TransactionID: "txn_1234567894"},
		{ID: "PAY006", StudentName: "Lisa Chen", CourseName: "Web Development Bootcamp", Amount: 89.99, Status: "refunded", Date: "2024-06-12", PaymentMethod: "Credit Card", TransactionID: "txn_1234567895"},
		{ID: "PAY007", StudentName: "David Martinez", CourseName: "Mobile App Development", Amount: 119.99, Status: "completed", Date: "2024-06-12", PaymentMethod: "Stripe", TransactionID: "txn_1234567896"},
		{ID: "PAY008", StudentName: "Jessica Lee", CourseName: "UI/UX Design Principles", Amount: 69.99, Status: "completed", Date: "2024-06-11", PaymentMethod: "PayPal", TransactionID: "txn_1234567897"},
	}
}

// Leaderboard returns the global leaderboard.
func Leaderboard() []LeaderboardEntry {
	return []LeaderboardEntry{
		{Rank: 1, Name: "Alex Student", Avatar: "AS", Points: 8450, CoursesCompleted: 12, Streak: 28, AverageScore: 94},
		{Rank: 2, Name: "Jordan Lee", Avatar: "JL", Points: 7920, CoursesCompleted: 11, Streak: 21, AverageScore: 91},
		{Rank: 3, Name: "Sam Wilson", Avatar: "SW", Points: 7650, CoursesCompleted: 10, Streak: 18, AverageScore: 89},
		{Rank: 4, Name: "Taylor Chen", Avatar: "TC", Points: 7220, CoursesCompleted: 9, Streak: 14, AverageScore: 87},
		{Rank: 5, Name: "Morgan Davis", Avatar: "MD", Points: 6890, CoursesCompleted: 8, Streak: 12, AverageScore: 85},
		{Rank: 6, Name: "Casey Johnson", Avatar: "CJ", Points: 6450, CoursesCompleted: 7, Streak: 10, AverageScore: 83},
		{Rank: 7, Name: "Riley Brown", Avatar: "RB", Points: 6120, CoursesCompleted: 6, Streak: 8, AverageScore: 81},
		{Rank: 8, Name: "Cameron White", Avatar: "CW", Points: 5890, CoursesCompleted: 6, Streak: 7, AverageScore: 79},
	}
}

// SearchCourses, SearchLessons and SearchInstructors return the records of the
// global search box.
func SearchCourses() []SearchCourse {
	return []SearchCourse{
		{ID: 1, Title: "Complete Web Development Bootcamp", Category: "Course", Icon: "🌐"},
		{ID: 2, Title: "Data Science Fundamentals", Category: "Course", Icon: "📊"},
		{ID: 3, Title: "UI/UX Design Principles", Category: "Course", Icon: "🎨"},
		{ID: 4, Title: "Advanced JavaScript", Category: "Course", Icon: "⚙️"},
		{ID: 5, Title: "React Mastery", Category: "Course", Icon: "⚛️"},
	}
}

func SearchLessons() []SearchLesson {
	return []SearchLesson{
		{ID: 1, Title: "Introduction to the Course", Category: "Lesson", Icon: "📹", CourseID: 1},
		{ID: 2, Title: "Setting Up Your Development Environment", Category: "Lesson", Icon: "📹", CourseID: 1},
		{ID: 3, Title: "CSS Flexbox Deep Dive", Category: "Lesson", Icon: "📹", CourseID: 1},
		{ID: 5, Title: "Introduction to CSS", Category: "Lesson", Icon: "📹", CourseID: 1},
		{ID: 7, Title: "Box Model Deep Dive", Category: "Lesson", Icon: "📹", CourseID: 1},
	}
}

func SearchInstructors() []SearchInstructor {
	return []SearchInstructor{
		{ID: 1, Name: "Dr. Sarah Chen", Category: "Instructor", Icon: "👨‍🏫"},
		{ID: 2, Name: "Prof. Michael Brown", Category: "Instructor", Icon: "👨‍🏫"},
		{ID: 3, Name: "Jane Williams", Category: "Instructor", Icon: "👩‍🏫"},
	}
}
