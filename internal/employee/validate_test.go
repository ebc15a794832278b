package employee

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func str(s string) *string   { return &s }

func validCreate() *CreatePayload {
	return &CreatePayload{
		Name:       "Ada",
		Email:      "ada@x.com",
		Phone:      "1234567890",
		Department: "Eng",
		Position:   "Dev",
		Salary:     f64(1000),
	}
}

func TestValidateCreate_OK(t *testing.T) {
	require.NoError(t, ValidateCreate(validCreate()))
}

func TestValidateCreate_ReportsExactMissingFields(t *testing.T) {
	p := &CreatePayload{Name: "Ada", Position: "Dev"}
	err := ValidateCreate(p)
	require.Error(t, err)
	var mf *MissingFieldsError
	require.ErrorAs(t, err, &mf)
	require.Equal(t, []string{"email", "phone", "department", "salary"}, mf.Fields)
}

func TestValidateCreate_WhitespaceCountsAsMissing(t *testing.T) {
	p := validCreate()
	p.Name = "   "
	err := ValidateCreate(p)
	var mf *MissingFieldsError
	require.ErrorAs(t, err, &mf)
	require.Equal(t, []string{"name"}, mf.Fields)
}

func TestValidateCreate_AllMissing(t *testing.T) {
	err := ValidateCreate(&CreatePayload{})
	var mf *MissingFieldsError
	require.ErrorAs(t, err, &mf)
	require.Equal(t, []string{"name", "email", "phone", "department", "position", "salary"}, mf.Fields)
}

func TestValidateCreate_BadEmail(t *testing.T) {
	for _, bad := range []string{"nope", "a@b", "a b@c.com", "@x.com", "a@.com"} {
		p := validCreate()
		p.Email = bad
		err := ValidateCreate(p)
		var ve *ValidationError
		require.ErrorAs(t, err, &ve, "email %q should be rejected", bad)
		require.Len(t, ve.Errors, 1)
		require.Contains(t, ve.Errors[0], "email")
	}
}

func TestValidateCreate_NegativeSalary(t *testing.T) {
	p := validCreate()
	p.Salary = f64(-1)
	err := ValidateCreate(p)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Contains(t, ve.Errors[0], "salary")
}

func TestValidateCreate_ZeroSalaryIsValid(t *testing.T) {
	p := validCreate()
	p.Salary = f64(0)
	require.NoError(t, ValidateCreate(p))
}

func TestValidateUpdate_AbsentFieldsSkipped(t *testing.T) {
	require.NoError(t, ValidateUpdate(&UpdatePayload{}))
	require.NoError(t, ValidateUpdate(&UpdatePayload{Name: str("New Name")}))
}

func TestValidateUpdate_PresentButEmptyRejected(t *testing.T) {
	err := ValidateUpdate(&UpdatePayload{Name: str(" "), Phone: str("")})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Errors, 2)
}

func TestValidateUpdate_BadEmailAndSalary(t *testing.T) {
	err := ValidateUpdate(&UpdatePayload{Email: str("not-an-email"), Salary: f64(-5)})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Errors, 2)
}

func TestNewRecord_NormalizesFields(t *testing.T) {
	p := validCreate()
	p.Email = "  ADA@X.COM "
	p.Name = " Ada "
	e := NewRecord(p)
	require.Equal(t, "ada@x.com", e.Email)
	require.Equal(t, "Ada", e.Name)
	require.Equal(t, 1000.0, e.Salary)
}

func TestCheckRecord_RejectsInvalidStoredState(t *testing.T) {
	e := NewRecord(validCreate())
	require.NoError(t, CheckRecord(e))

	e.Email = ""
	require.Error(t, CheckRecord(e))

	e = NewRecord(validCreate())
	e.Salary = -0.01
	require.Error(t, CheckRecord(e))
}
