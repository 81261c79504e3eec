package auth

// TokenPair is issued on every successful authentication event.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ID           int64  `json:"id"`
}

// Issuer builds access and refresh tokens for a subject.
type Issuer struct {
	codec *Codec
}

// NewIssuer returns an issuer signing through codec.
func NewIssuer(codec *Codec) *Issuer {
	return &Issuer{codec: codec}
}

// Issue signs an access token and a refresh token for subjectID.
// Both tokens are signed with one secret lookup; on any failure no pair is returned.
func (i *Issuer) Issue(subjectID int64) (*TokenPair, error) {
	key, err := i.codec.secret()
	if err != nil {
		return nil, err
	}

	clock := i.codec.Clock()
	access, err := i.codec.signWithKey(BuildClaims(subjectID, AccessTokenDays, clock), key)
	if err != nil {
		return nil, err
	}
	refresh, err := i.codec.signWithKey(BuildClaims(subjectID, RefreshTokenDays, clock), key)
	if err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh, ID: subjectID}, nil
}
