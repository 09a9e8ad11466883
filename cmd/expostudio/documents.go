// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"expostudio/internal/config"
	"expostudio/internal/site"
)

// siteURLFlag lets the document commands run without a full environment.
func siteURLFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "site-url", "", "public site URL (default: SITE_URL)")
}

func resolveSiteURL(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("load configuration: %w", err)
	}
	return cfg.SiteURL, nil
}

func sitemapCmd() *cobra.Command {
	var siteURL string
	cmd := &cobra.Command{
		Use:   "sitemap",
		Short: "Print sitemap.xml for the site catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := resolveSiteURL(siteURL)
			if err != nil {
				return err
			}
			cat, err := site.Load()
			if err != nil {
				return err
			}
			data, err := cat.Sitemap(base, time.Now())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	siteURLFlag(cmd, &siteURL)
	return cmd
}

func llmsCmd() *cobra.Command {
	var siteURL string
	cmd := &cobra.Command{
		Use:   "llms",
		Short: "Print llms.txt for the site catalogue",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := resolveSiteURL(siteURL)
			if err != nil {
				return err
			}
			cat, err := site.Load()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), cat.LLMContext(base))
			return err
		},
	}
	siteURLFlag(cmd, &siteURL)
	return cmd
}
