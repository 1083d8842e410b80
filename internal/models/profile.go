package models

// Profile is the request payload posted to /get_schemes. Every leaf is a
// string and every key is always serialized, even when empty.
type Profile struct {
	Objective             string                `json:"Objective" yaml:"Objective"`
	Demographics          Demographics          `json:"Demographics" yaml:"Demographics"`
	SpecificRequirements  SpecificRequirements  `json:"SpecificRequirements" yaml:"SpecificRequirements"`
	AdditionalInformation AdditionalInformation `json:"AdditionalInformation" yaml:"AdditionalInformation"`
}

type Demographics struct {
	Age                    string `json:"Age" yaml:"Age"`
	Salary                 string `json:"Salary" yaml:"Salary"`
	Gender                 string `json:"Gender" yaml:"Gender"`
	Occupation             string `json:"Occupation" yaml:"Occupation"`
	Category               string `json:"Category" yaml:"Category"`
	Location               string `json:"Location" yaml:"Location"`
	Disabled               string `json:"Disabled" yaml:"Disabled"`
	CriminalRecords        string `json:"CriminalRecords" yaml:"CriminalRecords"`
	Education              string `json:"Education" yaml:"Education"`
	Married                string `json:"Married" yaml:"Married"`
	NoOfChildren           string `json:"NoOfChildren" yaml:"NoOfChildren"`
	NoOfSiblings           string `json:"NoOfSiblings" yaml:"NoOfSiblings"`
	SingleParent           string `json:"SingleParent" yaml:"SingleParent"`
	DependentFamilyMembers string `json:"DependentFamilyMembers" yaml:"DependentFamilyMembers"`
}

type SpecificRequirements struct {
	Description   string `json:"Description" yaml:"Description"`
	TypeOfBenefit string `json:"TypeOfBenefit" yaml:"TypeOfBenefit"`
}

type AdditionalInformation struct {
	PreviousBeneficiaryStatus string `json:"PreviousBeneficiaryStatus" yaml:"PreviousBeneficiaryStatus"`
}

// Field groups
const (
	GroupDemographics          = "Demographics"
	GroupSpecificRequirements  = "SpecificRequirements"
	GroupAdditionalInformation = "AdditionalInformation"
)

// Input kinds
const (
	InputText     = "text"
	InputNumber   = "number"
	InputSelect   = "select"
	InputTextarea = "textarea"
)

// Field describes one leaf of the Profile as it appears on the form.
type Field struct {
	Group    string // empty for top-level fields
	Name     string
	Label    string
	Kind     string
	Options  []string
	Required bool
}

// Key is the dotted form name, e.g. "Demographics.Age".
func (f Field) Key() string {
	if f.Group == "" {
		return f.Name
	}
	return f.Group + "." + f.Name
}

// Path is the group path leading to the leaf.
func (f Field) Path() []string {
	if f.Group == "" {
		return nil
	}
	return []string{f.Group}
}

var yesNo = []string{"Yes", "No"}

// ProfileFields lists every Profile leaf in form order.
var ProfileFields = []Field{
	{Name: "Objective", Label: "Objective", Kind: InputText, Required: true},

	{Group: GroupDemographics, Name: "Age", Label: "Age", Kind: InputNumber},
	{Group: GroupDemographics, Name: "Salary", Label: "Salary", Kind: InputNumber},
	{Group: GroupDemographics, Name: "Gender", Label: "Gender", Kind: InputSelect, Options: []string{"Male", "Female", "Other"}},
	{Group: GroupDemographics, Name: "Occupation", Label: "Occupation", Kind: InputText},
	{Group: GroupDemographics, Name: "Category", Label: "Category", Kind: InputText},
	{Group: GroupDemographics, Name: "Location", Label: "Location", Kind: InputText},
	{Group: GroupDemographics, Name: "Disabled", Label: "Disabled", Kind: InputSelect, Options: yesNo},
	{Group: GroupDemographics, Name: "CriminalRecords", Label: "Criminal Records", Kind: InputSelect, Options: yesNo},
	{Group: GroupDemographics, Name: "Education", Label: "Education", Kind: InputText},
	{Group: GroupDemographics, Name: "Married", Label: "Married", Kind: InputSelect, Options: yesNo},
	{Group: GroupDemographics, Name: "NoOfChildren", Label: "No of Children", Kind: InputNumber},
	{Group: GroupDemographics, Name: "NoOfSiblings", Label: "No of Siblings", Kind: InputNumber},
	{Group: GroupDemographics, Name: "SingleParent", Label: "Single Parent", Kind: InputSelect, Options: yesNo},
	{Group: GroupDemographics, Name: "DependentFamilyMembers", Label: "Dependent Family Members", Kind: InputNumber},

	{Group: GroupSpecificRequirements, Name: "Description", Label: "Description", Kind: InputTextarea},
	{Group: GroupSpecificRequirements, Name: "TypeOfBenefit", Label: "Type of Benefit", Kind: InputText},

	{Group: GroupAdditionalInformation, Name: "PreviousBeneficiaryStatus", Label: "Previous Beneficiary Status", Kind: InputText},
}
