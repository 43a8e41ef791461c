package dtos

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJobRequest(t *testing.T) {
	cases := []struct {
		name   string
		req    JobRequest
		fields []string
	}{
		{"valid minimal", JobRequest{Company: "Stripe", Position: "Backend Engineer"}, nil},
		{"valid full", JobRequest{Company: "Stripe", Position: "SRE", Email: "hr@stripe.com", Status: "offer", AppliedDate: "2024-03-01"}, nil},
		{"short company", JobRequest{Company: "X", Position: "SRE"}, []string{"company"}},
		{"missing position", JobRequest{Company: "Stripe"}, []string{"position"}},
		{"bad email", JobRequest{Company: "Stripe", Position: "SRE", Email: "nope"}, []string{"email"}},
		{"bad status", JobRequest{Company: "Stripe", Position: "SRE", Status: "ghosted"}, []string{"status"}},
		{"bad date", JobRequest{Company: "Stripe", Position: "SRE", AppliedDate: "03/01/2024"}, []string{"applied_date"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(&tc.req)
			if tc.fields == nil {
				require.NoError(t, err)
				return
			}
			var fe FieldErrors
			require.True(t, errors.As(err, &fe), "expected FieldErrors, got %v", err)
			for _, f := range tc.fields {
				assert.Contains(t, fe, f)
			}
			assert.Len(t, fe, len(tc.fields))
		})
	}
}

func TestValidateUsesFieldMessages(t *testing.T) {
	err := Validate(&RegisterRequest{Name: "Al", Email: "al@example.com", Password: "short", Terms: false})

	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Password must be at least 8 characters", fe["password"])
	assert.Equal(t, "You must accept the Terms & Privacy Policy", fe["terms"])
	assert.NotContains(t, fe, "name")
	assert.Equal(t, "password: Password must be at least 8 characters; terms: You must accept the Terms & Privacy Policy", fe.Error())
}

func TestValidateLogin(t *testing.T) {
	require.NoError(t, Validate(&LoginRequest{Email: "a@b.co", Password: "12345678"}))

	err := Validate(&LoginRequest{Email: "not-an-email", Password: "12345678"})
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "Invalid email", fe["email"])
}

func TestValidateProfilePasswordChange(t *testing.T) {
	require.NoError(t, Validate(&UpdateProfileRequest{Name: "Ada", Email: "ada@example.com"}))

	err := Validate(&UpdateProfileRequest{Name: "Ada", Email: "ada@example.com", NewPassword: "brand-new-pass"})
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "currentPassword")
}

func TestValidateJobFollowUp(t *testing.T) {
	require.NoError(t, Validate(&JobFollowUpRequest{Content: "Checking in", SendNow: true}))
	require.NoError(t, Validate(&JobFollowUpRequest{Content: "Checking in", FollowUpDate: "2030-01-02"}))
	require.NoError(t, Validate(&JobFollowUpRequest{Content: "Checking in", FollowUpDate: "2030-01-02T09:30:00Z"}))

	err := Validate(&JobFollowUpRequest{Content: "Checking in"})
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "follow_up_date")

	err = Validate(&JobFollowUpRequest{FollowUpDate: "tomorrow", SendNow: false})
	require.True(t, errors.As(err, &fe))
	assert.Contains(t, fe, "follow_up_date")
	assert.Equal(t, "Please enter your follow-up message.", fe["content"])
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-05-06")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), d)

	ts, err := ParseDate("2024-05-06T10:11:12+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 6, 8, 11, 12, 0, time.UTC), ts.UTC())

	_, err = ParseDate("yesterday")
	assert.Error(t, err)

	assert.Equal(t, "2024-05-06", FormatDate(d))
}

func TestTranslatePassesThroughOtherErrors(t *testing.T) {
	other := errors.New("boom")
	assert.Equal(t, other, Translate(&JobRequest{}, other))
	assert.NoError(t, Translate(&JobRequest{}, nil))
}

func TestRegisterValidationsOnFreshEngine(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidations(v))

	require.NoError(t, v.Struct(&FollowUpRequest{JobID: 1, FollowUpDate: "2030-01-02", Content: "hi"}))

	err := v.Struct(&FollowUpRequest{JobID: 1, FollowUpDate: "soon", Content: "hi"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "follow_up_date", verrs[0].Field())
	assert.Equal(t, "date", verrs[0].Tag())
}
