package models

// Employee в формате внешнего API. SubmittedInfo заполнен только у заявок
// на изменение профиля: строка вида "email:a@b.com, phonenumber:..., ...".
type Employee struct {
	ID            int    `json:"id"`
	EmployeeCode  string `json:"employeeCode"`
	Fullname      string `json:"fullname"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
	BranchName    string `json:"branchName"`
	RoleName      string `json:"roleName"`
	Avatar        string `json:"avatar,omitempty"`
	PostalCode    string `json:"postalCode,omitempty"`
	Address       string `json:"address,omitempty"`
	District      string `json:"district,omitempty"`
	Province      string `json:"province,omitempty"`
	SubmittedInfo string `json:"submitedInfo"`
}

// EmployeeUpdate — тело PUT /api/requests/{id}: сотрудник с уже применёнными
// полями, submitedInfo передаётся разобранным объектом, а не строкой.
type EmployeeUpdate struct {
	Employee
	SubmittedInfo map[string]string `json:"submitedInfo"`
}
