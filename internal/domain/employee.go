package domain

// EmployeeProfile mirrors the ERP employee-details payload. The ERP omits
// fields freely, and several concepts (manager email, shift, visa) appear
// under more than one column name depending on the deployment, so display
// accessors carry the fallback chains.
type EmployeeProfile struct {
	FullName         string     `json:"Emp_EFullName_V,omitempty"`
	Designation      string     `json:"Dsm_Desc_V,omitempty"`
	DesignationAlt   string     `json:"Emp_Designation_V,omitempty"`
	Department       string     `json:"Dpm_Desc_V,omitempty"`
	DepartmentAlt    string     `json:"Emp_Department_V,omitempty"`
	ManagerName      string     `json:"Emp_EmployeeReportsDesc_V,omitempty"`
	ManagerNameAlt   string     `json:"Emp_Manager_V,omitempty"`
	Email            string     `json:"Emp_EmailID_V,omitempty"`
	ManagerEmail     string     `json:"Emp_ManagerEmailID_V,omitempty"`
	ManagerEmailAlt  string     `json:"Emp_EmployeeReportsEmailID_V,omitempty"`
	ManagerMobile    string     `json:"Emp_ManagerMobileNo_V,omitempty"`
	ManagerMobileAlt string     `json:"Emp_EmployeeReportsMobileNo_V,omitempty"`
	CompanyName      string     `json:"Cmp_Name_V,omitempty"`
	ShiftPolicy      string     `json:"Emp_ShiftPolicy_V,omitempty"`
	Shift            string     `json:"Emp_Shift_V,omitempty"`
	ShiftName        string     `json:"Sfh_ShiftName_V,omitempty"`
	ShiftCode        string     `json:"Sfh_ShiftCode_V,omitempty"`
	VisaType         string     `json:"Emp_VisaType_V,omitempty"`
	VisaTypeDesc     string     `json:"EmpVisatype_Desc_V,omitempty"`
	VisaTypeID       FlexString `json:"Emp_VisaTypeID_N,omitempty"`
	LeavePolicyName  string     `json:"Lph_Desc_V,omitempty"`
	LeavePolicyAlt   string     `json:"Emp_LeavePolicy_V,omitempty"`
}

// DisplayName returns the employee's full name, or "there" for greetings
// when the profile came back empty.
func (p EmployeeProfile) DisplayName() string {
	return CoalesceStr(p.FullName, "there")
}

func (p EmployeeProfile) JobPost() string {
	return OrNotAvailable(p.Designation, p.DesignationAlt)
}

func (p EmployeeProfile) DepartmentName() string {
	return OrNotAvailable(p.Department, p.DepartmentAlt)
}

func (p EmployeeProfile) Manager() string {
	return OrNotAvailable(p.ManagerName, p.ManagerNameAlt)
}

func (p EmployeeProfile) ManagerContactEmail() string {
	return CoalesceStr(p.ManagerEmail, p.ManagerEmailAlt)
}

func (p EmployeeProfile) ManagerContactMobile() string {
	return CoalesceStr(p.ManagerMobile, p.ManagerMobileAlt)
}

func (p EmployeeProfile) ShiftDescriptor() string {
	return OrNotAvailable(p.ShiftPolicy, p.Shift, p.ShiftName, p.ShiftCode)
}

func (p EmployeeProfile) VisaDescriptor() string {
	return OrNotAvailable(p.VisaType, p.VisaTypeDesc, p.VisaTypeID.String())
}

func (p EmployeeProfile) LeavePolicy() string {
	return CoalesceStr(p.LeavePolicyName, p.LeavePolicyAlt, "Not specified")
}
