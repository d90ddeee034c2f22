package registry

// CredentialType classifies what kind of secret a credential is. The
// classification is informational; it drives CLI display and setup guidance,
// not resolution behavior.
type CredentialType string

const (
	TypeAPIKey            CredentialType = "api_key"
	TypeBearerToken       CredentialType = "bearer_token"
	TypeAccessToken       CredentialType = "access_token"
	TypeOAuthClientID     CredentialType = "oauth_client_id"
	TypeOAuthClientSecret CredentialType = "oauth_client_secret"
	TypeWebhookSecret     CredentialType = "webhook_secret"
	TypeUsername          CredentialType = "username"
	TypePassword          CredentialType = "password"
	TypeOther             CredentialType = "other"
)

// CredentialDefinition describes one credential a service expects. Key names
// are globally unique across the whole registry so that a bare key can be
// traced back to its owning service.
type CredentialDefinition struct {
	Key         string         `yaml:"key" json:"key"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Type        CredentialType `yaml:"type" json:"type"`
	Required    bool           `yaml:"required,omitempty" json:"required,omitempty"`
	Pattern     string         `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	SetupURL    string         `yaml:"setupUrl,omitempty" json:"setupUrl,omitempty"`
	SetupSteps  []string       `yaml:"setupSteps,omitempty" json:"setupSteps,omitempty"`
	Default     string         `yaml:"default,omitempty" json:"default,omitempty"`
}

// ServiceDefinition describes a third-party service and the credentials it
// needs.
type ServiceDefinition struct {
	ID          string                 `yaml:"id" json:"id"`
	Name        string                 `yaml:"name" json:"name"`
	Description string                 `yaml:"description,omitempty" json:"description,omitempty"`
	Website     string                 `yaml:"website,omitempty" json:"website,omitempty"`
	Docs        string                 `yaml:"docs,omitempty" json:"docs,omitempty"`
	AuthMethods []string               `yaml:"authMethods,omitempty" json:"authMethods,omitempty"`
	Scopes      []string               `yaml:"scopes,omitempty" json:"scopes,omitempty"`
	SetupSteps  []string               `yaml:"setupSteps,omitempty" json:"setupSteps,omitempty"`
	Credentials []CredentialDefinition `yaml:"credentials" json:"credentials"`
}

// Credential returns the definition for key, if the service declares it.
func (s *ServiceDefinition) Credential(key string) (*CredentialDefinition, bool) {
	for i := range s.Credentials {
		if s.Credentials[i].Key == key {
			return &s.Credentials[i], true
		}
	}
	return nil, false
}

// RequiredKeys returns the keys of all credentials marked required, in
// declaration order.
func (s *ServiceDefinition) RequiredKeys() []string {
	var keys []string
	for _, cred := range s.Credentials {
		if cred.Required {
			keys = append(keys, cred.Key)
		}
	}
	return keys
}

// ServiceDocument is the on-disk shape of one service definition file.
type ServiceDocument struct {
	APIVersion string `yaml:"apiVersion" json:"apiVersion"`
	Kind       string `yaml:"kind" json:"kind"`
	Metadata   struct {
		ID          string `yaml:"id" json:"id"`
		Name        string `yaml:"name" json:"name"`
		Description string `yaml:"description,omitempty" json:"description,omitempty"`
		Website     string `yaml:"website,omitempty" json:"website,omitempty"`
		Docs        string `yaml:"docs,omitempty" json:"docs,omitempty"`
	} `yaml:"metadata" json:"metadata"`
	Spec struct {
		AuthMethods []string               `yaml:"authMethods,omitempty" json:"authMethods,omitempty"`
		Scopes      []string               `yaml:"scopes,omitempty" json:"scopes,omitempty"`
		SetupSteps  []string               `yaml:"setupSteps,omitempty" json:"setupSteps,omitempty"`
		Credentials []CredentialDefinition `yaml:"credentials" json:"credentials"`
	} `yaml:"spec" json:"spec"`
}

// Definition flattens the document into a ServiceDefinition.
func (d *ServiceDocument) Definition() ServiceDefinition {
	return ServiceDefinition{
		ID:          d.Metadata.ID,
		Name:        d.Metadata.Name,
		Description: d.Metadata.Description,
		Website:     d.Metadata.Website,
		Docs:        d.Metadata.Docs,
		AuthMethods: d.Spec.AuthMethods,
		Scopes:      d.Spec.Scopes,
		SetupSteps:  d.Spec.SetupSteps,
		Credentials: d.Spec.Credentials,
	}
}
