package model

// Credential is the single admin login record. Exactly one exists at a time:
// either the override persisted under the admin_credentials document key, or
// the built-in default derived from configuration. Changing the password
// replaces the record wholesale.
type Credential struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password"` // bcrypt hash; json key matches the stored document
	Role         string `json:"role"`
}

// Session asserts that the admin is currently authenticated. It is serialized
// into two redundant durable records: the signed token and a plaintext
// mirror. Validity is enforced by the session store's own expiry, not by
// inspecting IssuedAt.
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	IssuedAt int64  `json:"timestamp"` // unix milliseconds at issuance
}
