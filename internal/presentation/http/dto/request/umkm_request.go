package request

// CreateUmkmRequest is the create business payload
type CreateUmkmRequest struct {
	BusinessName    string  `json:"business_name" binding:"required"`
	BusinessType    string  `json:"business_type" binding:"required"`
	Description     *string `json:"description"`
	Address         string  `json:"address"`
	Phone           string  `json:"phone"`
	Email           *string `json:"email"`
	EstablishedYear *int    `json:"established_year"`
	EmployeeCount   int     `json:"employee_count"`
	MonthlyRevenue  float64 `json:"monthly_revenue"`
}

// UpdateUmkmRequest is the sparse business update payload
type UpdateUmkmRequest struct {
	BusinessName    *string  `json:"business_name"`
	BusinessType    *string  `json:"business_type"`
	Description     *string  `json:"description"`
	Address         *string  `json:"address"`
	Phone           *string  `json:"phone"`
	Email           *string  `json:"email"`
	EstablishedYear *int     `json:"established_year"`
	EmployeeCount   *int     `json:"employee_count"`
	MonthlyRevenue  *float64 `json:"monthly_revenue"`
}
