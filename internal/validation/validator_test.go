package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestStruct struct {
	ID         string `validate:"required,custom_id"`
	Name       string `validate:"required"`
	Difficulty string `validate:"required,oneof=easy medium hard"`
}

func TestValidateStruct(t *testing.T) {
	testCases := []struct {
		name             string
		input            TestStruct
		expectError      bool
		expectedErrorMsg string
	}{
		{
			name: "Success: All fields are valid",
			input: TestStruct{
				ID:         "valid-id_123-",
				Name:       "Quarterly audit",
				Difficulty: "medium",
			},
			expectError: false,
		},
		{
			name: "Failure: Invalid custom_id with spaces",
			input: TestStruct{
				ID:         "invalid id",
				Name:       "Quarterly audit",
				Difficulty: "medium",
			},
			expectError:      true,
			expectedErrorMsg: "field 'ID' must contain only letters, numbers, hyphens, and underscores",
		},
		{
			name: "Failure: Invalid custom_id with special characters",
			input: TestStruct{
				ID:         "invalid-id-!",
				Name:       "Quarterly audit",
				Difficulty: "medium",
			},
			expectError:      true,
			expectedErrorMsg: "field 'ID' must contain only letters, numbers, hyphens, and underscores",
		},
		{
			name: "Failure: Missing required field (Name)",
			input: TestStruct{
				ID:         "valid-id",
				Name:       "",
				Difficulty: "medium",
			},
			expectError:      true,
			expectedErrorMsg: "field 'Name' failed on the 'required' tag",
		},
		{
			name: "Failure: Difficulty outside allowed set",
			input: TestStruct{
				ID:         "valid-id",
				Name:       "Quarterly audit",
				Difficulty: "impossible",
			},
			expectError:      true,
			expectedErrorMsg: "field 'Difficulty' must be one of: easy medium hard",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateStruct(tc.input)

			if tc.expectError {
				assert.Error(t, err)
				require.IsType(t, &ValidationError{}, err, "error should be of type ValidationError")
				verr := err.(*ValidationError)
				assert.Contains(t, verr.Error(), tc.expectedErrorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []string{"error 1", "error 2"},
	}
	assert.Equal(t, "error 1, error 2", err.Error())
}
