package seeders

import (
	"log"

	"feesmanagement_go/database"
	"feesmanagement_go/models"
	"feesmanagement_go/utils"

	"github.com/shopspring/decimal"
)

// SeedAll runs all seeders
func SeedAll() {
	log.Println("Starting database seeding...")

	SeedUsers()
	SeedStudentClasses()
	SeedStudents()

	log.Println("Database seeding completed successfully!")
}

// SeedUsers seeds the users table with a default administrator account.
func SeedUsers() {
	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("Users already seeded, skipping...")
		return
	}

	adminPassword, err := utils.HashPassword("admin123")
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}

	users := []models.User{
		{
			Username: "admin",
			Password: adminPassword,
			Role:     "admin",
			Active:   true,
		},
	}

	for _, user := range users {
		if !utils.IsValidRole(user.Role) {
			log.Printf("Skipping user %s: invalid role %q", user.Username, user.Role)
			continue
		}
		if err := database.DB.Create(&user).Error; err != nil {
			log.Printf("Error seeding user %s: %v", user.Username, err)
		}
	}

	log.Println("Users seeded successfully")
}

// SeedStudentClasses seeds the student_classes table
func SeedStudentClasses() {
	var count int64
	database.DB.Model(&models.StudentClass{}).Count(&count)
	if count > 0 {
		log.Println("Student classes already seeded, skipping...")
		return
	}

	classes := []models.StudentClass{
		{Name: "Grade 1", FeeAmount: decimal.NewFromFloat(500.00)},
		{Name: "Grade 2", FeeAmount: decimal.NewFromFloat(550.00)},
		{Name: "Grade 3", FeeAmount: decimal.NewFromFloat(600.00)},
	}

	for _, class := range classes {
		if err := database.DB.Create(&class).Error; err != nil {
			log.Printf("Error seeding class %s: %v", class.Name, err)
		}
	}

	log.Println("Student classes seeded successfully")
}

// SeedStudents seeds the students table with sample records
func SeedStudents() {
	var count int64
	database.DB.Model(&models.Student{}).Count(&count)
	if count > 0 {
		log.Println("Students already seeded, skipping...")
		return
	}

	var grade1 models.StudentClass
	if err := database.DB.Where("name = ?", "Grade 1").First(&grade1).Error; err != nil {
		log.Printf("Error fetching Grade 1 for student seeding: %v", err)
		return
	}

	students := []models.Student{
		{
			FirstName:      "Asha",
			LastName:       "Verma",
			FatherName:     "Ramesh Verma",
			MotherName:     "Sunita Verma",
			Phone:          "9876543210",
			StudentClassID: grade1.ID,
		},
		{
			FirstName:      "Kiran",
			StudentClassID: grade1.ID,
		},
	}

	for _, student := range students {
		if err := database.DB.Create(&student).Error; err != nil {
			log.Printf("Error seeding student %s: %v", student.FirstName, err)
		}
	}

	log.Println("Students seeded successfully")
}
