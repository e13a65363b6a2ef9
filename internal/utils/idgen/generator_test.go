package idgen

import (
	"fmt"
	"strings"
	"testing"
)

func TestGenerateSecureID(t *testing.T) {
	tests := []struct {
		name       string
		prefix     string
		length     int
		wantErr    bool
		wantPrefix string
	}{
		{
			name:       "generate role ID",
			prefix:     "role",
			length:     16,
			wantErr:    false,
			wantPrefix: "role_",
		},
		{
			name:       "generate history ID",
			prefix:     "hist",
			length:     16,
			wantErr:    false,
			wantPrefix: "hist_",
		},
		{
			name:       "generate dialogue ID",
			prefix:     "dlg",
			length:     16,
			wantErr:    false,
			wantPrefix: "dlg_",
		},
		{
			name:       "generate short ID",
			prefix:     "test",
			length:     8,
			wantErr:    false,
			wantPrefix: "test_",
		},
		{
			name:       "generate long ID",
			prefix:     "test",
			length:     32,
			wantErr:    false,
			wantPrefix: "test_",
		},
		{
			name:    "zero length",
			prefix:  "test",
			length:  0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateSecureID(tt.prefix, tt.length)
			if (err != nil) != tt.wantErr {
				t.Errorf("GenerateSecureID() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if !strings.HasPrefix(got, tt.wantPrefix) {
					t.Errorf("GenerateSecureID() = %v, want prefix %v", got, tt.wantPrefix)
				}
				expectedLen := len(tt.prefix) + 1 + tt.length
				if len(got) != expectedLen {
					t.Errorf("GenerateSecureID() length = %v, want %v", len(got), expectedLen)
				}
				suffix := got[len(tt.prefix)+1:]
				for _, char := range suffix {
					if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9')) {
						t.Errorf("GenerateSecureID() contains invalid character: %c", char)
					}
				}
			}
		})
	}
}

func TestGenerateSecureID_Uniqueness(t *testing.T) {
	const iterations = 10000
	seen := make(map[string]bool)

	for i := 0; i < iterations; i++ {
		id, err := GenerateSecureID("test", 16)
		if err != nil {
			t.Fatalf("GenerateSecureID() error = %v", err)
		}
		if seen[id] {
			t.Errorf("GenerateSecureID() generated duplicate ID: %v", id)
		}
		seen[id] = true
	}

	if len(seen) != iterations {
		t.Errorf("Expected %d unique IDs, got %d", iterations, len(seen))
	}
}

func TestValidateIDFormat(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		expectedPrefix string
		want           bool
	}{
		{
			name:           "valid role ID",
			id:             "role_a3f8d2k9p1m4n7q2",
			expectedPrefix: "role",
			want:           true,
		},
		{
			name:           "valid history ID",
			id:             "hist_x7y2z5w8r3t6u9v1",
			expectedPrefix: "hist",
			want:           true,
		},
		{
			name:           "wrong prefix",
			id:             "role_a3f8d2k9p1m4n7q2",
			expectedPrefix: "hist",
			want:           false,
		},
		{
			name:           "missing underscore",
			id:             "rolea3f8d2k9p1m4n7q2",
			expectedPrefix: "role",
			want:           false,
		},
		{
			name:           "empty suffix",
			id:             "role_",
			expectedPrefix: "role",
			want:           false,
		},
		{
			name:           "invalid characters (uppercase)",
			id:             "role_A3F8D2K9P1M4N7Q2",
			expectedPrefix: "role",
			want:           false,
		},
		{
			name:           "invalid characters (special chars)",
			id:             "role_a3f8-d2k9-p1m4",
			expectedPrefix: "role",
			want:           false,
		},
		{
			name:           "invalid characters (underscore in suffix)",
			id:             "role_a3f8_d2k9",
			expectedPrefix: "role",
			want:           false,
		},
		{
			name:           "empty ID",
			id:             "",
			expectedPrefix: "role",
			want:           false,
		},
		{
			name:           "only prefix",
			id:             "role",
			expectedPrefix: "role",
			want:           false,
		},
		{
			name:           "numbers only suffix",
			id:             "test_123456789",
			expectedPrefix: "test",
			want:           true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateIDFormat(tt.id, tt.expectedPrefix); got != tt.want {
				t.Errorf("ValidateIDFormat(%q, %q) = %v, want %v", tt.id, tt.expectedPrefix, got, tt.want)
			}
		})
	}
}

func TestValidateIDFormat_GeneratedIDs(t *testing.T) {
	prefixes := []string{"role", "hist", "dlg", "user"}
	lengths := []int{8, 12, 16, 24, 32}

	for _, prefix := range prefixes {
		for _, length := range lengths {
			t.Run(fmt.Sprintf("%s_%d", prefix, length), func(t *testing.T) {
				id, err := GenerateSecureID(prefix, length)
				if err != nil {
					t.Fatalf("GenerateSecureID() error = %v", err)
				}
				if !ValidateIDFormat(id, prefix) {
					t.Errorf("Generated ID %q failed validation with prefix %q", id, prefix)
				}
			})
		}
	}
}

func BenchmarkGenerateSecureID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, err := GenerateSecureID("role", 16)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkValidateIDFormat(b *testing.B) {
	id := "role_a3f8d2k9p1m4n7q2"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ValidateIDFormat(id, "role")
	}
}
