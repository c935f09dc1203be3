// Copyright 2026 SpotHero
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tracing

import "github.com/spf13/pflag"

// RegisterFlags registers Tracer flags with pflags
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.BoolVar(&c.Enabled, "tracer-enabled", c.Enabled, "Enable exporting traces")
	flags.StringVar(&c.Exporter, "tracer-exporter", "otlp", "Trace exporter: \"otlp\" (gRPC) or \"stdout\"")
	flags.StringVar(&c.OTLPEndpoint, "tracer-otlp-endpoint", "localhost:4317", "OTLP gRPC collector endpoint")
	flags.BoolVar(&c.OTLPInsecure, "tracer-otlp-insecure", true, "Disable TLS towards the OTLP collector")
	flags.StringVar(&c.SamplerType, "tracer-sampler-type", "always", "Tracer sampler type: \"always\", \"never\" or \"ratio\"")
	flags.Float64Var(&c.SamplerParam, "tracer-sampler-param", 1.0, "Sampling ratio for the \"ratio\" sampler")
	flags.StringVar(&c.ServiceName, "tracer-service-name", c.ServiceName, "Determines the service name reported with spans")
}
