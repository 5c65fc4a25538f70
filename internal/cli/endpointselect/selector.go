package endpointselect

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"

	"github.com/nebulastore/nebula/internal/cli/config"
	"github.com/nebulastore/nebula/internal/cli/userconfig"
)

// Resolver picks the API endpoint for a command
type Resolver struct {
	// StateDir holds the user config with the saved selection
	StateDir string
	// Fallback is used when no project config exists
	Fallback string
	// Interactive enables the selection prompt; defaults to stdin being a terminal
	Interactive func() bool
	// Prompt asks the user to pick an endpoint
	Prompt func(cfg *config.Config) (*config.Endpoint, error)
}

// Resolve determines which endpoint to use based on the following priority:
// 1. If alias is provided, use that endpoint
// 2. If user has a selected endpoint in their local config, use that
// 3. If only one endpoint in project config, use that
// 4. Otherwise, prompt user to select an endpoint (first one when not interactive)
// Without a project config the fallback URL is used.
func (r *Resolver) Resolve(alias string) (*config.Endpoint, error) {
	projectConfig, err := config.LoadFromCurrentDir()
	if err != nil {
		if errors.Is(err, config.ErrNotFound) && alias == "" {
			return &config.Endpoint{Alias: "default", URL: r.Fallback}, nil
		}
		return nil, fmt.Errorf("failed to load config: %w\nRun 'nebula init' to create a configuration file", err)
	}

	return r.resolve(projectConfig, alias)
}

func (r *Resolver) resolve(projectConfig *config.Config, alias string) (*config.Endpoint, error) {
	// Priority 1: Use endpoint alias if provided
	if alias != "" {
		return projectConfig.GetEndpointByAlias(alias)
	}

	if len(projectConfig.Endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints configured in %s", config.ConfigFileName)
	}

	// Priority 2: Use selected endpoint from user config
	selectedURL, err := userconfig.GetSelectedEndpoint(r.StateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if selectedURL != "" {
		endpoint, err := projectConfig.GetEndpointByURLOrAlias(selectedURL)
		if err != nil {
			// Selected endpoint no longer exists in project config, clear it and continue
			_ = userconfig.SetSelectedEndpoint(r.StateDir, "")
		} else {
			return endpoint, nil
		}
	}

	// Priority 3: If only one endpoint, use it automatically
	if len(projectConfig.Endpoints) == 1 {
		return &projectConfig.Endpoints[0], nil
	}

	// Priority 4: Prompt user to select an endpoint
	if !r.interactive() {
		return &projectConfig.Endpoints[0], nil
	}

	prompt := r.Prompt
	if prompt == nil {
		prompt = PromptEndpointSelection
	}
	endpoint, err := prompt(projectConfig)
	if err != nil {
		return nil, err
	}

	// Save the selected endpoint
	if err := userconfig.SetSelectedEndpoint(r.StateDir, endpoint.URL); err != nil {
		// Don't fail if we can't save, just continue
		fmt.Fprintf(os.Stderr, "Warning: failed to save selected endpoint: %v\n", err)
	}

	return endpoint, nil
}

func (r *Resolver) interactive() bool {
	if r.Interactive != nil {
		return r.Interactive()
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PromptEndpointSelection shows an interactive prompt for the user to select an endpoint
func PromptEndpointSelection(projectConfig *config.Config) (*config.Endpoint, error) {
	if len(projectConfig.Endpoints) == 0 {
		return nil, fmt.Errorf("no endpoints configured in %s", config.ConfigFileName)
	}

	// Create display labels for each endpoint
	type endpointOption struct {
		Label    string
		Endpoint *config.Endpoint
	}

	options := make([]endpointOption, len(projectConfig.Endpoints))
	for i := range projectConfig.Endpoints {
		endpoint := &projectConfig.Endpoints[i]
		options[i] = endpointOption{
			Label:    fmt.Sprintf("%s (%s)", endpoint.Alias, endpoint.URL),
			Endpoint: endpoint,
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "> {{ .Label | cyan }}",
		Inactive: "  {{ .Label }}",
		Selected: "{{ .Label | green }}",
	}

	prompt := promptui.Select{
		Label:     "Select an endpoint",
		Items:     options,
		Templates: templates,
		Size:      10,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return nil, fmt.Errorf("endpoint selection cancelled: %w", err)
	}

	return options[index].Endpoint, nil
}
