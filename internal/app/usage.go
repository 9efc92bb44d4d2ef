package app

import (
	"context"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/go-github/v45/github"
)

// Version is set at compile time
var Version = ""

const (
	owner = "probekit"
	repo  = "tcpping"
)

// PrintUsage prints how tcpping should be run
func PrintUsage() {
	executableName := os.Args[0]

	fmt.Printf("\ntcpping version %s\n\n", Version)
	fmt.Printf("Try running %s like:\n", executableName)
	fmt.Printf("%s <hostname/ip>. For example:\n", executableName)
	fmt.Printf("%s www.example.com -p 443\n", executableName)
	fmt.Printf("\n[optional flags]\n")

	flag.VisitAll(func(f *flag.Flag) {
		flagName := f.Name
		if len(f.Name) > 1 {
			flagName = "-" + flagName
		}

		fmt.Printf("  -%s : %s\n", flagName, f.Usage)
	})
}

// PrintVersion prints the running version
func PrintVersion() {
	fmt.Printf("tcpping version %s\n", Version)
}

func compareVersions(v1, v2 string) int {
	parts1 := strings.Split(v1, ".")
	parts2 := strings.Split(v2, ".")

	for i := range min(len(parts1), len(parts2)) {
		n1, _ := strconv.Atoi(parts1[i])
		n2, _ := strconv.Atoi(parts2[i])

		if n1 < n2 {
			return -1
		}
		if n1 > n2 {
			return 1
		}
	}

	// for cases in which version numbers differ in length
	if len(parts1) < len(parts2) {
		return -1
	}

	if len(parts1) > len(parts2) {
		return 1
	}

	return 0
}

// CheckForUpdates asks GitHub for the latest release and reports whether
// a newer version exists.
func CheckForUpdates() (string, error) {
	c := github.NewClient(nil)

	// unauthenticated requests from the same IP are limited to 60 per hour
	latestRelease, _, err := c.Repositories.GetLatestRelease(context.Background(), owner, repo)
	if err != nil {
		return "", fmt.Errorf("check for updates: %w", err)
	}

	reg := `^v?(\d+\.\d+\.\d+)$`
	latestTagName := latestRelease.GetTagName()
	latestVersion := regexp.MustCompile(reg).FindStringSubmatch(latestTagName)

	if len(latestVersion) == 0 {
		return "", fmt.Errorf("version name does not match the expected format: %s", latestTagName)
	}

	comparison := compareVersions(Version, latestVersion[1])

	switch {
	case comparison < 0:
		return fmt.Sprintf("Found newer version %s\nhttps://github.com/%s/%s/releases/tag/%s",
			latestVersion[1], owner, repo, latestTagName), nil
	case comparison > 0:
		return fmt.Sprintf("Current version %s is newer than the latest release %s",
			Version, latestVersion[1]), nil
	default:
		return fmt.Sprintf("You have the latest version: %s", Version), nil
	}
}
