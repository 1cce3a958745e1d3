package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	infirmary "github.com/jpmpuerm/infirmary-client"
	"github.com/jpmpuerm/infirmary-client/calllog/repository"
	"github.com/jpmpuerm/infirmary-client/calllog/service"
	"github.com/jpmpuerm/infirmary-client/config"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errRequestFailed = errors.New("request failed")

type failureOutput struct {
	Error       bool   `json:"error"`
	Status      int    `json:"status"`
	Body        any    `json:"body"`
	Description string `json:"description,omitempty"`
}

func fetchCmd(configuration *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <path-or-url>",
		Short: "GET lab result rows from the API and print them as diagnostic groups",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, _ := cmd.Flags().GetString("token")
			queryFlags, _ := cmd.Flags().GetStringToString("query")
			normalizer, err := normalizerFromFlags(cmd, configuration)
			if err != nil {
				return err
			}

			query := infirmary.Query{}
			for key, value := range queryFlags {
				query[key] = value
			}

			gateway := infirmary.NewGateway(
				infirmary.NewRestyClient(cmd.Context(), configuration),
				service.NewCallLogService(repository.NewCallLogRepository(configuration.CallLogSize)),
			)
			envelope, err := gateway.Request(cmd.Context(), "get", resolveURL(configuration.APIBaseURL, args[0]), query, token, nil)
			if err != nil {
				return err
			}

			switch result := envelope.(type) {
			case infirmary.Failure:
				output := failureOutput{Error: true, Status: result.Status, Body: result.Body}
				if descriptor, ok := result.Descriptor(); ok {
					output.Description = descriptor.Name
				}
				if err := writeJSON(cmd.OutOrStdout(), output); err != nil {
					return err
				}
				return errors.Wrapf(errRequestFailed, "status %d", result.Status)
			case infirmary.Success:
				var rows []infirmary.RawParameterRow
				if err := result.Decode(&rows); err != nil {
					log.Error().Err(err).Msg("Response is not a list of lab result rows")
					return err
				}
				groups, err := normalizer.Normalize(rows)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), groups)
			}
			return nil
		},
	}
	cmd.Flags().String("token", os.Getenv("ACCESS_TOKEN"), "Bearer token sent with the request")
	cmd.Flags().StringToString("query", map[string]string{}, "Query parameters, e.g. --query patientNo=7000123")
	cmd.Flags().String("policy", infirmary.PassThrough.String(), "Handling of incomplete rows: passthrough, skip or fail")
	return cmd
}

func normalizeCmd(configuration *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize lab result rows read from a JSON file or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			normalizer, err := normalizerFromFlags(cmd, configuration)
			if err != nil {
				return err
			}

			var input io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return errors.Wrapf(err, "can not open %s", file)
				}
				defer f.Close()
				input = f
			}

			var rows []infirmary.RawParameterRow
			if err := json.NewDecoder(input).Decode(&rows); err != nil {
				return errors.Wrap(err, "can not decode lab result rows")
			}

			groups, err := normalizer.Normalize(rows)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), groups)
		},
	}
	cmd.Flags().String("file", "-", "JSON file holding an array of rows, - for stdin")
	cmd.Flags().String("policy", infirmary.PassThrough.String(), "Handling of incomplete rows: passthrough, skip or fail")
	return cmd
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <code|KEY>",
		Short: "Look up a status code or key, e.g. 401 or UNAUTHORIZED",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var descriptor infirmary.StatusDescriptor
			var ok bool
			if code, err := strconv.Atoi(args[0]); err == nil {
				descriptor, ok = infirmary.LookupStatus(code)
			} else {
				descriptor, ok = infirmary.LookupStatus(strings.ToUpper(args[0]))
			}
			if !ok {
				return fmt.Errorf("unknown status %q", args[0])
			}
			return writeJSON(cmd.OutOrStdout(), descriptor)
		},
	}
}

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <jwt>",
		Short: "Print the claims of an access token without verifying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			claims, err := infirmary.DecodeUserToken(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), claims)
		},
	}
}

func normalizerFromFlags(cmd *cobra.Command, configuration *config.Configuration) (infirmary.ResultNormalizer, error) {
	policyFlag, _ := cmd.Flags().GetString("policy")
	policy, err := infirmary.ParseValidationPolicy(policyFlag)
	if err != nil {
		return nil, err
	}
	return infirmary.NewResultNormalizer(policy, configuration.DateLocation), nil
}

// resolveURL joins relative paths onto the configured API base URL
func resolveURL(baseURL, pathOrURL string) string {
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(pathOrURL, "/")
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
