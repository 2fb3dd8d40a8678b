// Copyright Amazon.com Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may
// not use this file except in compliance with the License. A copy of the
// License is located at
//
//     http://aws.amazon.com/apache2.0/
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
// express or implied. See the License for the specific language governing
// permissions and limitations under the License.

package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/arn"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/go-logr/logr"
	"github.com/jaypipes/envutil"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap/zapcore"
	ctrlrt "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	ackv1alpha1 "github.com/aws-controllers-k8s/route53resolver-controller/apis/core/v1alpha1"
	"github.com/aws-controllers-k8s/route53resolver-controller/pkg/featuregate"
)

const (
	flagEnableLeaderElection          = "enable-leader-election"
	flagLeaderElectionNamespace       = "leader-election-namespace"
	flagMetricAddr                    = "metrics-addr"
	flagHealthProbeAddr               = "health-probe-addr"
	flagEnableWebhooks                = "enable-webhooks"
	flagWebhookPort                   = "webhook-port"
	flagEnableDevLogging              = "enable-development-logging"
	flagAWSRegion                     = "aws-region"
	flagAWSEndpointURL                = "aws-endpoint-url"
	flagAWSRoleARN                    = "aws-role-arn"
	flagLogLevel                      = "log-level"
	flagResourceTags                  = "resource-tags"
	flagWatchNamespace                = "watch-namespace"
	flagDeletionPolicy                = "deletion-policy"
	flagMaxConcurrentSyncs            = "max-concurrent-syncs"
	flagReconcileDefaultResyncSeconds = "reconcile-default-resync-seconds"
	flagReconcileResourceResyncSecs   = "reconcile-resource-resync-seconds"
	flagMaxRetries                    = "max-retries"
	flagBackoffInitial                = "backoff-initial"
	flagBackoffMax                    = "backoff-max"
	flagBackoffFactor                 = "backoff-factor"
	flagBackoffJitter                 = "backoff-jitter"
	flagFeatureGates                  = "feature-gates"
	envVarAWSRegion                   = "AWS_REGION"
	envVarAWSEndpointURL              = "AWS_ENDPOINT_URL"
)

// DefaultResourceTags are set on every resource the controller manages
var DefaultResourceTags = []string{
	"services.k8s.aws/controller-version=%CONTROLLER_SERVICE%-%CONTROLLER_VERSION%",
	"services.k8s.aws/namespace=%K8S_NAMESPACE%",
}

// Config contains configuration options for the route53resolver controller
type Config struct {
	MetricsAddr              string
	HealthProbeAddr          string
	EnableLeaderElection     bool
	EnableWebhooks           bool
	WebhookPort              int
	LeaderElectionNamespace  string
	EnableDevelopmentLogging bool
	AccountID                string
	Region                   string
	EndpointURL              string
	// RoleARN is an IAM role assumed through STS for every backend call
	RoleARN                  string
	LogLevel                 string
	ResourceTags             []string
	WatchNamespace           string
	DeletionPolicy           ackv1alpha1.DeletionPolicy

	// MaxConcurrentSyncs is the number of dispatcher workers
	MaxConcurrentSyncs             int
	ReconcileDefaultResyncSeconds  int
	ReconcileResourceResyncSeconds []string

	MaxRetries     int
	BackoffInitial time.Duration
	BackoffMax     time.Duration
	BackoffFactor  float64
	BackoffJitter  float64

	FeatureFlags map[string]bool
	FeatureGates featuregate.FeatureGates

	// featureGatesRaw is bound to --feature-gates; pflag has no
	// map[string]bool flag type
	featureGatesRaw map[string]string
	// resourceResyncPeriods holds the parsed ReconcileResourceResyncSeconds
	resourceResyncPeriods map[string]int
}

// BindFlags defines CLI/runtime configuration options
func (cfg *Config) BindFlags() {
	cfg.BindFlagSet(flag.CommandLine)
}

// BindFlagSet defines the configuration options on the supplied FlagSet
func (cfg *Config) BindFlagSet(fs *flag.FlagSet) {
	fs.StringVar(
		&cfg.MetricsAddr, flagMetricAddr,
		"0.0.0.0:8080",
		"The address the metric endpoint binds to.",
	)
	fs.StringVar(
		&cfg.HealthProbeAddr, flagHealthProbeAddr,
		":8081",
		"The address the health probe endpoint binds to.",
	)
	fs.BoolVar(
		&cfg.EnableWebhooks, flagEnableWebhooks,
		false,
		"Serve the validating admission webhooks of the managed resources.",
	)
	fs.IntVar(
		&cfg.WebhookPort, flagWebhookPort,
		9443,
		"The port the webhook server listens on.",
	)
	fs.BoolVar(
		&cfg.EnableLeaderElection, flagEnableLeaderElection,
		false,
		"Enable leader election for controller manager. "+
			"Enabling this will ensure there is only one active controller manager.",
	)
	fs.StringVar(
		&cfg.LeaderElectionNamespace, flagLeaderElectionNamespace,
		"",
		"Specific namespace in which the leader election lease is held. "+
			"Defaults to the namespace the controller runs in.",
	)
	fs.BoolVar(
		&cfg.EnableDevelopmentLogging, flagEnableDevLogging,
		false,
		"Configures the logger to use a Zap development config (encoder=consoleEncoder,logLevel=Debug,stackTraceLevel=Warn, no sampling), "+
			"otherwise a Zap production config will be used (encoder=jsonEncoder,logLevel=Info,stackTraceLevel=Error), sampling).",
	)
	fs.StringVar(
		&cfg.Region, flagAWSRegion,
		envutil.WithDefault(envVarAWSRegion, ""),
		"The AWS Region in which the service controller will create its resources",
	)
	fs.StringVar(
		&cfg.EndpointURL, flagAWSEndpointURL,
		envutil.WithDefault(envVarAWSEndpointURL, ""),
		"The AWS endpoint URL the service controller will use to create its resources. This is an optional"+
			" flag that can be used to override the default behaviour of aws-sdk-go-v2 that constructs endpoint URLs"+
			" automatically based on service and region",
	)
	fs.StringVar(
		&cfg.RoleARN, flagAWSRoleARN,
		"",
		"The ARN of an IAM role the service controller assumes before calling the Route 53 Resolver API."+
			" When empty, the default credential chain is used as is",
	)
	fs.StringVar(
		&cfg.LogLevel, flagLogLevel,
		"info",
		"The log level. Default is info. We use logr interface which only supports info and debug level",
	)
	fs.StringSliceVar(
		&cfg.ResourceTags, flagResourceTags,
		DefaultResourceTags,
		"Configures the service controller to always set key/value pairs tags on resources that it manages.",
	)
	fs.StringVar(
		&cfg.WatchNamespace, flagWatchNamespace,
		"",
		"Specific namespace the service controller will watch for object creation from CRD. "+
			" By default it will listen to all namespaces",
	)
	cfg.DeletionPolicy = ackv1alpha1.DeletionPolicyDelete
	fs.Var(
		&cfg.DeletionPolicy, flagDeletionPolicy,
		"The default deletion policy for all resources managed by the controller",
	)
	fs.IntVar(
		&cfg.MaxConcurrentSyncs, flagMaxConcurrentSyncs,
		4,
		"Number of resources reconciled in parallel. Each resource is only ever reconciled by one worker at a time.",
	)
	fs.IntVar(
		&cfg.ReconcileDefaultResyncSeconds, flagReconcileDefaultResyncSeconds,
		0,
		"The default duration, in seconds, to wait before resyncing desired state of custom resources. "+
			"This value is used if no resource-specific override has been specified. Default is 10 hours.",
	)
	fs.StringArrayVar(
		&cfg.ReconcileResourceResyncSeconds, flagReconcileResourceResyncSecs,
		[]string{},
		"A Key/Value list of strings representing the reconcile resync configuration for each resource. This"+
			" configuration maps resource kinds to drift remediation periods in seconds. If provided, "+
			" resource-specific resync periods take precedence over the default period.",
	)
	fs.IntVar(
		&cfg.MaxRetries, flagMaxRetries,
		10,
		"Number of consecutive transient failures tolerated before a resource is marked Failed. 0 retries forever.",
	)
	fs.DurationVar(
		&cfg.BackoffInitial, flagBackoffInitial,
		time.Second,
		"Delay before the first retry of a transient failure.",
	)
	fs.DurationVar(
		&cfg.BackoffMax, flagBackoffMax,
		5*time.Minute,
		"Maximum delay between two retries of a transient failure.",
	)
	fs.Float64Var(
		&cfg.BackoffFactor, flagBackoffFactor,
		2,
		"Factor the retry delay is multiplied by after each transient failure.",
	)
	fs.Float64Var(
		&cfg.BackoffJitter, flagBackoffJitter,
		0.2,
		"Fraction by which each retry delay is randomly stretched.",
	)
	fs.StringToStringVar(
		&cfg.featureGatesRaw, flagFeatureGates,
		map[string]string{},
		"Feature gates to enable or disable, e.g. ResourceAdoption=true,ReadOnlyResources=false",
	)
}

// SetupLogger initializes the logger used in the service controller
func (cfg *Config) SetupLogger() logr.Logger {
	var lvl zapcore.LevelEnabler

	switch cfg.LogLevel {
	case "debug":
		lvl = zapcore.DebugLevel
	default:
		lvl = zapcore.InfoLevel
	}

	zapOptions := zap.Options{
		Development: cfg.EnableDevelopmentLogging,
		Level:       lvl,
	}
	log := zap.New(zap.UseFlagOptions(&zapOptions))
	ctrlrt.SetLogger(log)
	return log
}

// callerIdentityAPI is the part of the STS client used to discover the
// account the controller runs in
type callerIdentityAPI interface {
	GetCallerIdentity(
		context.Context,
		*sts.GetCallerIdentityInput,
		...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

// SetAWSAccountID uses sts GetCallerIdentity API to find AWS AccountId and set
// in Config
func (cfg *Config) SetAWSAccountID(ctx context.Context) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return fmt.Errorf("unable to load AWS config: %w", err)
	}
	if cfg.EndpointURL != "" {
		awsCfg.BaseEndpoint = aws.String(cfg.EndpointURL)
	}
	return cfg.setAccountIDFrom(ctx, sts.NewFromConfig(awsCfg))
}

func (cfg *Config) setAccountIDFrom(ctx context.Context, client callerIdentityAPI) error {
	res, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return fmt.Errorf("unable to get caller identity: %w", err)
	}
	if res.Account == nil || *res.Account == "" {
		return errors.New("caller identity has no account")
	}
	cfg.AccountID = *res.Account
	return nil
}

// Validate ensures the options are valid. The AWS account ID is discovered
// through STS unless it is already set.
func (cfg *Config) Validate(ctx context.Context, options ...Option) error {
	merged := mergeOptions(options)

	if cfg.Region == "" {
		return errors.New("unable to start service controller as AWS region is missing. Please pass --aws-region flag or set AWS_REGION environment variable")
	}

	if cfg.EndpointURL != "" {
		endpoint, err := url.Parse(cfg.EndpointURL)
		if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
			return errors.New("invalid service endpoint. Please refer to " +
				"https://docs.aws.amazon.com/general/latest/gr/aws-service-information.html for more details")
		}
	}

	if err := validateBindAddress(flagMetricAddr, cfg.MetricsAddr); err != nil {
		return err
	}
	if err := validateBindAddress(flagHealthProbeAddr, cfg.HealthProbeAddr); err != nil {
		return err
	}

	if cfg.EnableWebhooks && (cfg.WebhookPort < 1 || cfg.WebhookPort > 65535) {
		return fmt.Errorf("invalid value for flag '%s': %d is not a port", flagWebhookPort, cfg.WebhookPort)
	}

	if cfg.RoleARN != "" {
		parsed, err := arn.Parse(cfg.RoleARN)
		if err != nil || parsed.Service != "iam" || !strings.HasPrefix(parsed.Resource, "role/") {
			return fmt.Errorf("invalid value for flag '%s': %q is not an IAM role ARN", flagAWSRoleARN, cfg.RoleARN)
		}
	}

	if cfg.DeletionPolicy == "" {
		cfg.DeletionPolicy = ackv1alpha1.DeletionPolicyDelete
	}
	if _, err := ackv1alpha1.ParseDeletionPolicy(string(cfg.DeletionPolicy)); err != nil {
		return fmt.Errorf("invalid value for flag '%s': %w", flagDeletionPolicy, err)
	}

	if cfg.MaxConcurrentSyncs < 1 {
		return fmt.Errorf("invalid value for flag '%s': must be at least 1", flagMaxConcurrentSyncs)
	}
	if cfg.MaxRetries < 0 {
		return fmt.Errorf("invalid value for flag '%s': must not be negative", flagMaxRetries)
	}
	if cfg.BackoffInitial <= 0 || cfg.BackoffMax < cfg.BackoffInitial {
		return fmt.Errorf("invalid backoff: '%s' must be positive and not greater than '%s'", flagBackoffInitial, flagBackoffMax)
	}
	if cfg.BackoffFactor < 1 {
		return fmt.Errorf("invalid value for flag '%s': must be at least 1", flagBackoffFactor)
	}
	if cfg.BackoffJitter < 0 || cfg.BackoffJitter > 1 {
		return fmt.Errorf("invalid value for flag '%s': must be between 0 and 1", flagBackoffJitter)
	}

	if cfg.ReconcileDefaultResyncSeconds < 0 {
		return fmt.Errorf("invalid value for flag '%s': resync seconds default must be greater than 0", flagReconcileDefaultResyncSeconds)
	}
	if err := cfg.parseReconcileResourceResyncSeconds(merged); err != nil {
		return err
	}

	if err := cfg.parseFeatureGates(); err != nil {
		return err
	}

	if cfg.AccountID == "" {
		if err := cfg.SetAWSAccountID(ctx); err != nil {
			return fmt.Errorf("unable to determine account ID: %w", err)
		}
	}
	return nil
}

func (cfg *Config) parseFeatureGates() error {
	if cfg.FeatureFlags == nil {
		cfg.FeatureFlags = map[string]bool{}
	}
	for name, raw := range cfg.featureGatesRaw {
		enabled, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid value for feature gate %s: %w", name, err)
		}
		cfg.FeatureFlags[name] = enabled
	}
	gates, err := featuregate.GetFeatureGatesWithOverrides(cfg.FeatureFlags)
	if err != nil {
		return fmt.Errorf("error overriding feature gates: %w", err)
	}
	cfg.FeatureGates = gates
	return nil
}

// parseReconcileResourceResyncSeconds parses the values of the
// --reconcile-resource-resync-seconds flag and checks every key names a
// managed resource kind
func (cfg *Config) parseReconcileResourceResyncSeconds(opts Option) error {
	cfg.resourceResyncPeriods = make(map[string]int, len(cfg.ReconcileResourceResyncSeconds))
	for _, resourceResyncSecondsFlag := range cfg.ReconcileResourceResyncSeconds {
		resourceName, resyncSeconds, err := parseReconcileFlagArgument(resourceResyncSecondsFlag)
		if err != nil {
			return fmt.Errorf("error parsing flag argument '%v': %v. Expected format: resource=value", resourceResyncSecondsFlag, err)
		}
		if len(opts.managed) > 0 && !opts.hasKind(resourceName) {
			return fmt.Errorf("error parsing flag argument '%v': resource '%v' is not managed by this controller", resourceResyncSecondsFlag, resourceName)
		}
		cfg.resourceResyncPeriods[strings.ToLower(resourceName)] = resyncSeconds
	}
	return nil
}

// GetReconcileResourceResyncSeconds returns the resync period of the supplied
// resource kind and whether one was configured
func (cfg *Config) GetReconcileResourceResyncSeconds(kind string) (time.Duration, bool) {
	seconds, ok := cfg.resourceResyncPeriods[strings.ToLower(kind)]
	if !ok {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

// parseReconcileFlagArgument parses a flag argument of the form key=value into
// its key and non-negative integer value
func parseReconcileFlagArgument(flagArgument string) (string, int, error) {
	delimiter := "="
	elements := strings.Split(flagArgument, delimiter)
	if len(elements) != 2 {
		return "", 0, fmt.Errorf("invalid flag argument format: expected key=value")
	}
	if elements[0] == "" {
		return "", 0, fmt.Errorf("missing key in flag argument")
	}
	if elements[1] == "" {
		return "", 0, fmt.Errorf("missing value in flag argument")
	}

	resyncSeconds, err := strconv.Atoi(elements[1])
	if err != nil {
		return "", 0, fmt.Errorf("invalid value in flag argument: %v", err)
	}
	if resyncSeconds < 0 {
		return "", 0, fmt.Errorf("invalid value in flag argument: expected non-negative integer, got %d", resyncSeconds)
	}
	return elements[0], resyncSeconds, nil
}
