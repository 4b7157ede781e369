package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"rpc-dumper/internal/metadata"
	"rpc-dumper/internal/resolve"
	"rpc-dumper/internal/schema"
)

const (
	fileName  = ".rpc-dumper"
	fileType  = "yaml"
	envPrefix = "RPCDUMP"
)

// Keys.
const (
	KeyNamespace          = "namespace"
	KeyMessagePrefixes    = "message_prefixes"
	KeyPolymorphicMarker  = "polymorphic_marker"
	KeyExternalNamespaces = "external_namespaces"
	KeyIDField            = "id_field"
	KeyNameField          = "name_field"
	KeyArgumentType       = "nested.argument"
	KeyReturnType         = "nested.return"
	KeyExtendedReturnType = "nested.extended_return"
	KeyPayloadExcluded    = "payload_excluded"
	KeyOutput             = "output"
	KeyFormat             = "format"
	KeyProvider           = "provider"
	KeyCacheSize          = "cache_size"
)

// Provider names.
const (
	ProviderAuto = "auto"
	ProviderDump = "dump"
	ProviderGo   = "go"
)

// Nested holds the simple names of the nested payload types.
type Nested struct {
	Argument       string `mapstructure:"argument"`
	Return         string `mapstructure:"return"`
	ExtendedReturn string `mapstructure:"extended_return"`
}

// Config is the resolved configuration of a run.
type Config struct {
	Namespace          string   `mapstructure:"namespace"`
	MessagePrefixes    []string `mapstructure:"message_prefixes"`
	PolymorphicMarker  string   `mapstructure:"polymorphic_marker"`
	ExternalNamespaces []string `mapstructure:"external_namespaces"`
	IDField            string   `mapstructure:"id_field"`
	NameField          string   `mapstructure:"name_field"`
	Nested             Nested   `mapstructure:"nested"`
	PayloadExcluded    []string `mapstructure:"payload_excluded"`

	Output    string `mapstructure:"output"`
	Format    string `mapstructure:"format"`
	Provider  string `mapstructure:"provider"`
	CacheSize int    `mapstructure:"cache_size"`
}

// New returns a viper instance with defaults and environment binding set.
// Variables from .env in the working directory are loaded into the process
// environment when the file exists; variables already set win.
func New() *viper.Viper {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// message_prefixes has no default; bind it so the env var is still seen
	_ = v.BindEnv(KeyMessagePrefixes)

	return v
}

func setDefaults(v *viper.Viper) {
	conv := resolve.DefaultConventions()

	v.SetDefault(KeyNamespace, conv.Namespace)
	v.SetDefault(KeyPolymorphicMarker, conv.PolymorphicMarker)
	v.SetDefault(KeyExternalNamespaces, conv.ExternalNamespaces)
	v.SetDefault(KeyIDField, conv.IDField)
	v.SetDefault(KeyNameField, conv.NameField)
	v.SetDefault(KeyArgumentType, conv.ArgumentType)
	v.SetDefault(KeyReturnType, conv.ReturnType)
	v.SetDefault(KeyExtendedReturnType, conv.ExtendedReturnType)
	v.SetDefault(KeyPayloadExcluded, conv.PayloadExcluded)
	v.SetDefault(KeyOutput, ".")
	v.SetDefault(KeyFormat, string(schema.FormatJSON))
	v.SetDefault(KeyProvider, ProviderAuto)
	v.SetDefault(KeyCacheSize, metadata.DefaultCacheSize)
}

// Load reads the config file into v and decodes the result. An explicit
// path must exist; the default .rpc-dumper.yaml in dir is optional.
// Message prefixes not given anywhere follow the namespace.
func Load(v *viper.Viper, path, dir string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(fileName)
		v.SetConfigType(fileType)
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || (!errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist)) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if len(c.MessagePrefixes) == 0 {
		c.MessagePrefixes = resolve.MessagePrefixesFor(c.Namespace)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks values that have a closed set of choices.
func (c *Config) Validate() error {
	if _, err := schema.ParseFormat(c.Format); err != nil {
		return err
	}

	switch c.Provider {
	case ProviderAuto, ProviderDump, ProviderGo:
	default:
		return fmt.Errorf("unknown provider %q (want %s, %s or %s)", c.Provider, ProviderAuto, ProviderDump, ProviderGo)
	}

	if c.CacheSize <= 0 {
		return fmt.Errorf("cache_size must be positive, got %d", c.CacheSize)
	}

	if c.Namespace == "" {
		return errors.New("namespace must not be empty")
	}

	return nil
}

// Conventions returns the resolver conventions the config describes.
func (c *Config) Conventions() resolve.Conventions {
	conv := resolve.DefaultConventions()

	conv.Namespace = c.Namespace
	conv.MessagePrefixes = c.MessagePrefixes
	conv.PolymorphicMarker = c.PolymorphicMarker
	conv.ExternalNamespaces = c.ExternalNamespaces
	conv.IDField = c.IDField
	conv.NameField = c.NameField
	conv.ArgumentType = c.Nested.Argument
	conv.ReturnType = c.Nested.Return
	conv.ExtendedReturnType = c.Nested.ExtendedReturn
	conv.PayloadExcluded = c.PayloadExcluded

	return conv
}

// OutputFormat returns the parsed output format.
func (c *Config) OutputFormat() schema.Format {
	f, _ := schema.ParseFormat(c.Format)
	return f
}
