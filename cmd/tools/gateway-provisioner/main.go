// cmd/tools/gateway-provisioner/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	awsclient "github.com/ajithmanmu/customer-retention-agent/internal/common/aws"
	"github.com/ajithmanmu/customer-retention-agent/pkg/registry"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	provisionCmd := flag.NewFlagSet("provision", flag.ExitOnError)
	targetsCmd := flag.NewFlagSet("targets", flag.ExitOnError)

	// Validate command flags
	validatePath := validateCmd.String("path", "configs/tool-registry.json", "Path to registry file")

	// Provision command flags
	region := provisionCmd.String("region", "us-east-1", "AWS region")
	prefix := provisionCmd.String("prefix", "/retention-agent/", "Parameter store prefix")
	gatewayURL := provisionCmd.String("gateway-url", "", "Agent gateway URL to publish")
	knowledgeBaseID := provisionCmd.String("knowledge-base-id", "", "Knowledge base ID to publish")
	memoryID := provisionCmd.String("memory-id", "", "Memory ID to publish")

	// Targets command flags
	targetsPath := targetsCmd.String("path", "configs/tool-registry.json", "Path to registry file")
	baseURL := targetsCmd.String("base-url", "http://localhost:8080", "Base URL of the tool endpoints")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateRegistry(*validatePath); err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Registry validation passed.")

	case "provision":
		provisionCmd.Parse(os.Args[2:])
		if *gatewayURL == "" && *knowledgeBaseID == "" && *memoryID == "" {
			fmt.Println("Error: at least one of gateway-url, knowledge-base-id, memory-id is required.")
			provisionCmd.Usage()
			os.Exit(1)
		}
		if err := provision(*region, *prefix, *gatewayURL, *knowledgeBaseID, *memoryID); err != nil {
			fmt.Printf("Provisioning failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Provisioning complete.")

	case "targets":
		targetsCmd.Parse(os.Args[2:])
		if err := printTargets(*targetsPath, *baseURL); err != nil {
			fmt.Printf("Error building targets: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

// validateRegistry checks the registry for structural problems and compiles
// every declared input and output schema.
func validateRegistry(path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	if len(reg.Tools) == 0 {
		return fmt.Errorf("registry contains no tools")
	}

	ids := make(map[string]bool)
	for _, tool := range reg.Tools {
		if tool.ID == "" {
			return fmt.Errorf("tool missing required field: ID")
		}
		if ids[tool.ID] {
			return fmt.Errorf("duplicate tool ID: %s", tool.ID)
		}
		ids[tool.ID] = true

		if tool.DisplayName == "" {
			return fmt.Errorf("tool %s missing required field: DisplayName", tool.ID)
		}
		if tool.Description == "" {
			return fmt.Errorf("tool %s missing required field: Description", tool.ID)
		}
		if len(tool.ErrorCodes) == 0 {
			return fmt.Errorf("tool %s declares no error codes", tool.ID)
		}

		if _, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(tool.InputSchema)); err != nil {
			return fmt.Errorf("tool %s input schema does not compile: %w", tool.ID, err)
		}
		if tool.OutputSchema != nil {
			if _, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(tool.OutputSchema)); err != nil {
				return fmt.Errorf("tool %s output schema does not compile: %w", tool.ID, err)
			}
		}
	}

	fmt.Printf("Registry validation passed. Found %d tools.\n", len(reg.Tools))
	return nil
}

// provision publishes the shared agent parameters so every deployment reads
// the same gateway URL, knowledge base and memory IDs.
func provision(region, prefix, gatewayURL, knowledgeBaseID, memoryID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ssmClient, err := awsclient.NewSSMClient(ctx, region)
	if err != nil {
		return fmt.Errorf("ssm client: %w", err)
	}

	prefix = strings.TrimSuffix(prefix, "/") + "/"

	params := map[string]string{
		"gateway_url":       gatewayURL,
		"knowledge_base_id": knowledgeBaseID,
		"memory_id":         memoryID,
	}
	for name, value := range params {
		if value == "" {
			continue
		}
		if err := ssmClient.PutParameter(ctx, prefix+name, value); err != nil {
			return fmt.Errorf("put parameter %s: %w", name, err)
		}
		fmt.Printf("Published %s%s\n", prefix, name)
	}
	return nil
}

// printTargets emits the tool target payloads for registering the endpoints
// with the agent runtime's gateway.
func printTargets(path, baseURL string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}

	type target struct {
		Name        string                 `json:"name"`
		Description string                 `json:"description"`
		Endpoint    string                 `json:"endpoint"`
		InputSchema map[string]interface{} `json:"inputSchema"`
	}

	targets := make([]target, 0, len(reg.Tools))
	for _, tool := range reg.Tools {
		targets = append(targets, target{
			Name:        tool.ID,
			Description: tool.Description,
			Endpoint:    strings.TrimSuffix(baseURL, "/") + "/tools/" + tool.ID,
			InputSchema: tool.InputSchema,
		})
	}

	data, err := json.MarshalIndent(targets, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal targets: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func help() {
	fmt.Println(`
Usage: gateway-provisioner <command> [flags]

Commands:
  validate   Validate the tool registry and compile its schemas
  provision  Publish shared agent parameters to the parameter store
  targets    Print the tool target payloads for gateway registration
  help       Show this help message

Examples:
  gateway-provisioner validate -path configs/tool-registry.json
  gateway-provisioner provision -region us-east-1 -prefix /retention-agent/ -gateway-url https://gw.example.com/invoke
  gateway-provisioner targets -base-url https://tools.example.com

Use 'gateway-provisioner <command> -h' for more information about a command.`)
}
