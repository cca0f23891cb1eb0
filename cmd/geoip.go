package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/ariebrainware/basis-data-dental/config"
	"github.com/ariebrainware/basis-data-dental/util"
	"github.com/spf13/cobra"
)

func newGeoIPCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geoip",
		Short: "Manage the GeoIP database used to locate security events",
	}
	cmd.AddCommand(newGeoIPDownloadCommand())
	return cmd
}

func newGeoIPDownloadCommand() *cobra.Command {
	var (
		url     string
		dest    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download an .mmdb (optionally .gz) file and check it opens",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			logger := util.InitLogger(cfg)
			if url == "" {
				url = config.Viper().GetString("GEOIP_DB_URL")
			}
			if url == "" {
				return fmt.Errorf("no url given: pass --url or set GEOIP_DB_URL")
			}
			if dest == "" {
				dest = cfg.GeoIPPath
			}
			if dest == "" {
				return fmt.Errorf("no destination: pass --out or set GEOIP_DB_PATH")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			path, err := util.DownloadGeoIP(ctx, url, dest)
			if err != nil {
				return fmt.Errorf("download: %w", err)
			}
			if err := util.ValidateGeoIP(path); err != nil {
				return fmt.Errorf("downloaded file is not a valid GeoIP database: %w", err)
			}
			logger.Info().Str("path", path).Msg("geoip database ready")
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "download url (default GEOIP_DB_URL)")
	cmd.Flags().StringVar(&dest, "out", "", "destination path (default GEOIP_DB_PATH)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "download timeout")
	return cmd
}
