package auth

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HASH TESTS

const (
	testPassword = "cheetohDeadbolt123"
	altPassword  = "cheetohDeadbolt124"
)

func TestWasHashed(t *testing.T) {
	for _, algo := range []HashAlgorithm{HashBcrypt, HashArgon2id} {
		t.Run(string(algo), func(t *testing.T) {
			hashedPass, err := HashPassword(testPassword, algo)
			require.NoError(t, err)
			assert.NotEqual(t, testPassword, hashedPass, "password was not hashed")
			assert.NotContains(t, hashedPass, testPassword)
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	// the same password must never produce the same hash twice
	first, err := HashPassword(testPassword, HashBcrypt)
	require.NoError(t, err)
	second, err := HashPassword(testPassword, HashBcrypt)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestBcryptCost(t *testing.T) {
	hashedPass, err := HashPassword(testPassword, HashBcrypt)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashedPass, "$2a$10$"), "unexpected bcrypt prefix: %s", hashedPass)
}

func TestHashUnequal(t *testing.T) {
	hashedPass, err := HashPassword(testPassword, HashBcrypt)
	if err != nil {
		t.Error(err)
	}
	match, _ := CheckPasswordHash(altPassword, hashedPass)
	if match {
		t.Error("password should not have matched, but did")
	}
}

func TestHashEqual(t *testing.T) {
	hashedPass, err := HashPassword(testPassword, HashBcrypt)
	if err != nil {
		t.Error(err)
	}
	match, _ := CheckPasswordHash(testPassword, hashedPass)
	if !match {
		t.Error("password should have matched, but did not")
	}
}

func TestCheckPasswordHash(t *testing.T) {
	password1 := "correctPassword123!"
	password2 := "anotherPassword456!"
	hash1, _ := HashPassword(password1, HashBcrypt)
	hash1Argon, _ := HashPassword(password1, HashArgon2id)
	hash1Plaintext := "$argon2id$v=19$m=65536,t=3,p=1$4XBycjFNyGzPuTk203FltA$Cw0x4cICG21uRv9zUHi+Gi7ygneSYO2+mmzc9a4EDSI"
	hash2, _ := HashPassword(password2, HashBcrypt)

	tests := []struct {
		name          string
		password      string
		hash          string
		wantErr       bool
		matchPassword bool
	}{
		{
			name:          "Correct password",
			password:      password1,
			hash:          hash1,
			wantErr:       false,
			matchPassword: true,
		},
		{
			name:          "Incorrect password",
			password:      "wrongPassword",
			hash:          hash1,
			wantErr:       false,
			matchPassword: false,
		},
		{
			name:          "Password doesn't match different hash",
			password:      password1,
			hash:          hash2,
			wantErr:       false,
			matchPassword: false,
		},
		{
			name:          "Empty password",
			password:      "",
			hash:          hash1,
			wantErr:       false,
			matchPassword: false,
		},
		{
			name:          "Invalid hash",
			password:      password1,
			hash:          "invalidhash",
			wantErr:       true,
			matchPassword: false,
		},
		{
			name:          "Correct password against argon2id hash",
			password:      password1,
			hash:          hash1Argon,
			wantErr:       false,
			matchPassword: true,
		},
		{
			name:          "Password compares to pre-generated plaintext hash",
			password:      password1,
			hash:          hash1Plaintext,
			wantErr:       false,
			matchPassword: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := CheckPasswordHash(tt.password, tt.hash)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckPasswordHash() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && match != tt.matchPassword {
				t.Errorf("CheckPasswordHash() expects %v, got %v", tt.matchPassword, match)
			}
		})
	}
}

func TestParseHashAlgorithm(t *testing.T) {
	cases := map[string]struct {
		want    HashAlgorithm
		wantErr bool
	}{
		"":         {want: HashBcrypt},
		"bcrypt":   {want: HashBcrypt},
		"ARGON2ID": {want: HashArgon2id},
		"md5":      {wantErr: true},
	}
	for input, c := range cases {
		t.Run(input, func(t *testing.T) {
			got, err := ParseHashAlgorithm(input)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

// JWT TESTS

func TestJWTRejectExpired(t *testing.T) {
	userID := uuid.New()
	token, err := MakeJWT(userID, USER, jwt.SigningMethodHS256, "very-secret-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(token, "very-secret-secret", "HS256")
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTRoundTripCarriesRole(t *testing.T) {
	userID := uuid.New()
	token, err := MakeJWT(userID, ADMIN, jwt.SigningMethodHS256, "secret", time.Hour)
	require.NoError(t, err)

	identity, err := ValidateJWT(token, "secret", "HS256")
	require.NoError(t, err)
	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, ADMIN, identity.Role)
}

func TestJWTExpiresInOneHour(t *testing.T) {
	token, err := MakeJWT(uuid.New(), USER, jwt.SigningMethodHS256, "secret", time.Hour)
	require.NoError(t, err)

	claims := Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, &claims)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	assert.Equal(t, TokenIssuer, claims.Issuer)
}

func TestValidateJWT(t *testing.T) {
	userID := uuid.New()
	validToken, _ := MakeJWT(userID, USER, jwt.SigningMethodHS256, "secret", time.Hour)
	invalidToken, _ := MakeJWT(userID, USER, jwt.SigningMethodHS384, "secret", time.Hour)

	badRoleToken, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: "superuser",
	}).SignedString([]byte("secret"))

	noExpiryToken, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:  TokenIssuer,
			Subject: userID.String(),
		},
		Role: "user",
	}).SignedString([]byte("secret"))

	tests := []struct {
		name        string
		tokenString string
		tokenSecret string
		wantUserID  uuid.UUID
		wantErr     bool
	}{
		{
			name:        "Valid token",
			tokenString: validToken,
			tokenSecret: "secret",
			wantUserID:  userID,
			wantErr:     false,
		},
		{
			name:        "Invalid token",
			tokenString: "invalid.token.string",
			tokenSecret: "secret",
			wantUserID:  uuid.Nil,
			wantErr:     true,
		},
		{
			name:        "Wrong secret",
			tokenString: validToken,
			tokenSecret: "wrong_secret",
			wantUserID:  uuid.Nil,
			wantErr:     true,
		},
		{
			name:        "Wrong algorithm",
			tokenString: invalidToken,
			tokenSecret: "secret",
			wantUserID:  uuid.Nil,
			wantErr:     true,
		},
		{
			name:        "Unknown role",
			tokenString: badRoleToken,
			tokenSecret: "secret",
			wantUserID:  uuid.Nil,
			wantErr:     true,
		},
		{
			name:        "Missing expiry",
			tokenString: noExpiryToken,
			tokenSecret: "secret",
			wantUserID:  uuid.Nil,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := ValidateJWT(tt.tokenString, tt.tokenSecret, "HS256")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateJWT() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && !errors.Is(err, ErrInvalidToken) {
				t.Errorf("ValidateJWT() error = %v, want ErrInvalidToken", err)
			}
			if identity.UserID != tt.wantUserID {
				t.Errorf("ValidateJWT() gotUserID = %v, want %v", identity.UserID, tt.wantUserID)
			}
		})
	}
}

func TestGetBearerToken(t *testing.T) {
	const tokenWant = "thisIsATokenString"

	type testCases struct {
		name          string
		headers       http.Header
		expectedToken string
		expectErr     bool
	}

	cases := []testCases{
		{
			name:          "valid header",
			headers:       http.Header{"Authorization": []string{"Bearer " + tokenWant}},
			expectedToken: tokenWant,
			expectErr:     false,
		},
		{
			name:          "missing header",
			headers:       http.Header{},
			expectedToken: "",
			expectErr:     true,
		},
		{
			name:          "header present but empty",
			headers:       http.Header{"Authorization": []string{}},
			expectedToken: "",
			expectErr:     true,
		},
		{
			name:          "Bearer without token",
			headers:       http.Header{"Authorization": []string{"Bearer "}},
			expectedToken: "",
			expectErr:     true,
		},
		{
			name:          "incorrect scheme",
			headers:       http.Header{"Authorization": []string{"Token " + tokenWant}},
			expectedToken: "",
			expectErr:     true,
		},
		{
			name:          "no space after scheme",
			headers:       http.Header{"Authorization": []string{"Bearer" + tokenWant}},
			expectedToken: "",
			expectErr:     true,
		},
		{
			name:          "Different case Bearer",
			headers:       http.Header{"Authorization": []string{"bEaReR " + tokenWant}},
			expectedToken: tokenWant,
			expectErr:     false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			token, err := GetBearerToken(c.headers)
			if (err != nil) != c.expectErr {
				t.Errorf("expected error: %v, got: %v", c.expectErr, err)
			}
			if token != c.expectedToken {
				t.Errorf("expected token: %v, got: %v", c.expectedToken, token)
			}
		})
	}
}

func TestRoleFromString(t *testing.T) {
	cases := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{input: "admin", want: ADMIN},
		{input: "USER", want: USER},
		{input: " user ", want: USER},
		{input: "", wantErr: true},
		{input: "manager", wantErr: true},
	}
	for _, c := range cases {
		got, err := RoleFromString(c.input)
		if c.wantErr {
			assert.Error(t, err, "input %q", c.input)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
		assert.Equal(t, strings.ToLower(strings.TrimSpace(c.input)), got.String())
	}
}
