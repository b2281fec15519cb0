package employee

import (
	"time"

	"hrms/internal/domain/auth"
)

type Employee struct {
	ID           string     `json:"id"`
	EmployeeCode string     `json:"employeeCode"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	DateOfBirth  *time.Time `json:"dateOfBirth,omitempty"`
	HireDate     time.Time  `json:"hireDate"`
	Role         auth.Role  `json:"role"`
	ManagerID    *string    `json:"managerId,omitempty"`
	IsActive     bool       `json:"isActive"`
	IsFirstLogin bool       `json:"isFirstLogin"`
	CreatedAt    time.Time  `json:"createdAt"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type ContactInfo struct {
	ID                    string `json:"id"`
	EmployeeID            string `json:"employeeId"`
	Phone                 string `json:"phone,omitempty"`
	AddressLine1          string `json:"addressLine1,omitempty"`
	AddressLine2          string `json:"addressLine2,omitempty"`
	City                  string `json:"city,omitempty"`
	State                 string `json:"state,omitempty"`
	PostalCode            string `json:"postalCode,omitempty"`
	Country               string `json:"country,omitempty"`
	EmergencyContactName  string `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone string `json:"emergencyContactPhone,omitempty"`
}

type PayInfo struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employeeId"`
	Salary        *float64 `json:"salary,omitempty"`
	HourlyRate    *float64 `json:"hourlyRate,omitempty"`
	PayFrequency  string   `json:"payFrequency"`
	PaymentMethod string   `json:"paymentMethod"`
	BankName      string   `json:"bankName,omitempty"`
	AccountNumber string   `json:"accountNumber,omitempty"`
	RoutingNumber string   `json:"routingNumber,omitempty"`
}
