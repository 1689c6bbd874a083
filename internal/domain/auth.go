package domain

// AuthClaims are the claims extracted from a Supabase-issued access token
type AuthClaims struct {
	Sub      string `json:"sub"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	ChurchID string `json:"church_id,omitempty"`
	Aud      string `json:"aud"`
	Exp      int64  `json:"exp"`
}
