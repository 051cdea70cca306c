// The admin tool generates synthetic datasets for local development and
// mints tokens for calling the reporting API.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/platform-analytics/app/sdk/auth"
	"github.com/jcpaschoal/platform-analytics/business/types/role"
	"github.com/jcpaschoal/platform-analytics/foundation/keystore"
	"github.com/jcpaschoal/platform-analytics/foundation/logger"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Auth struct {
		KeysFolder string `envconfig:"AUTH_KEYS_FOLDER" default:"zarf/keys"`
		ActiveKID  string `envconfig:"AUTH_ACTIVE_KID" default:"54bb2165-71e1-41a6-af3e-7da4a0e1e2c1"`
		Issuer     string `envconfig:"AUTH_ISSUER" default:"https://platform-analytics/auth/"`
	}
}

var tenancies = []string{"Nebula", "Phoenix", "Orion", "Vega", "Atlas", "Lyra", "Cygnus", "Draco"}
var environments = []string{"Production", "Development", "Staging"}
var components = []string{"Connect", "Workbench"}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: gendata, gentoken")
		return nil
	}

	switch os.Args[1] {
	case "gendata":
		return runGenData(ctx, log, os.Args[2:])
	case "gentoken":
		return runGenToken(ctx, log, cfg, os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

// runGenData writes the four CSV datasets the service loads at startup.
func runGenData(ctx context.Context, log *logger.Logger, args []string) error {
	cmd := flag.NewFlagSet("gendata", flag.ExitOnError)
	dir := cmd.String("dir", "zarf/data", "Output directory")
	users := cmd.Int("users", 2000, "Number of user rows")
	days := cmd.Int("days", 120, "Number of time series days")
	seed := cmd.Int64("seed", 1, "Random seed")
	cmd.Parse(args)

	rng := rand.New(rand.NewSource(*seed))
	end := time.Now().UTC().Truncate(24 * time.Hour)

	if err := os.MkdirAll(*dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", *dir, err)
	}

	if err := writeUsers(*dir, rng, *users, *days, end); err != nil {
		return err
	}
	if err := writeTenancies(*dir, rng); err != nil {
		return err
	}
	if err := writeLicences(*dir, rng); err != nil {
		return err
	}
	if err := writeSeries(*dir, rng, *days, end); err != nil {
		return err
	}

	log.Info(ctx, "gendata: datasets written", "dir", *dir, "users", *users, "days", *days)

	return nil
}

func writeUsers(dir string, rng *rand.Rand, users int, days int, end time.Time) error {
	rows := [][]string{{"userId", "tenancy", "component", "environment", "lastLogin", "loginCount"}}

	for i := 0; i < users; i++ {
		userID := uuid.NewString()
		lastLogin := end.AddDate(0, 0, -rng.Intn(days))

		// A slice of users appears under a second tenancy/component pair
		// so the identity resolution path has real work to do.
		n := 1
		if rng.Intn(10) == 0 {
			n = 2
		}

		for j := 0; j < n; j++ {
			rows = append(rows, []string{
				userID,
				tenancies[rng.Intn(len(tenancies))],
				components[rng.Intn(len(components))],
				environments[rng.Intn(len(environments))],
				lastLogin.AddDate(0, 0, -j).Format(time.DateOnly),
				strconv.Itoa(rng.Intn(60)),
			})
		}
	}

	return writeCSV(filepath.Join(dir, "users.csv"), rows)
}

func writeTenancies(dir string, rng *rand.Rand) error {
	rows := [][]string{{"tenancy", "activeUsers", "totalLogins", "workbenchUsers", "connectUsers", "growth"}}

	for _, tnc := range tenancies {
		active := 50 + rng.Intn(450)
		rows = append(rows, []string{
			tnc,
			strconv.Itoa(active),
			strconv.Itoa(active * (5 + rng.Intn(20))),
			strconv.Itoa(rng.Intn(active)),
			strconv.Itoa(rng.Intn(active)),
			fmt.Sprintf("%.1f", rng.Float64()*30-10),
		})
	}

	return writeCSV(filepath.Join(dir, "tenancies.csv"), rows)
}

func writeLicences(dir string, rng *rand.Rand) error {
	rows := [][]string{{"tenancy", "component", "licencesUsed"}}

	for _, tnc := range tenancies {
		for _, comp := range components {
			rows = append(rows, []string{tnc, comp, strconv.Itoa(100 + rng.Intn(900))})
		}
	}

	return writeCSV(filepath.Join(dir, "licences.csv"), rows)
}

func writeSeries(dir string, rng *rand.Rand, days int, end time.Time) error {
	rows := [][]string{{"date", "activeUsers", "logins", "newUsers", "powerUsers", "regularUsers", "lightUsers", "dormantUsers"}}

	total := 10500
	for i := days - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)

		power := 200 + rng.Intn(300)
		regular := 800 + rng.Intn(700)
		light := 500 + rng.Intn(1000)
		dormant := total - power - regular - light
		active := power + regular + light

		rows = append(rows, []string{
			day.Format(time.DateOnly),
			strconv.Itoa(active),
			strconv.Itoa(active * (2 + rng.Intn(4))),
			strconv.Itoa(rng.Intn(40)),
			strconv.Itoa(power),
			strconv.Itoa(regular),
			strconv.Itoa(light),
			strconv.Itoa(dormant),
		})
	}

	return writeCSV(filepath.Join(dir, "timeseries.csv"), rows)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()

	return w.Error()
}

// runGenToken mints a signed token for calling the API locally.
func runGenToken(ctx context.Context, log *logger.Logger, cfg Config, args []string) error {
	cmd := flag.NewFlagSet("gentoken", flag.ExitOnError)
	roleStr := cmd.String("role", "VIEWER", "Role (ADMIN, ANALYST, VIEWER)")
	tenancy := cmd.String("tenancy", "", "Tenancy scope, empty for unscoped")
	cmd.Parse(args)

	r, err := role.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	ks := keystore.New()
	if _, err := ks.LoadByFileSystem(os.DirFS(cfg.Auth.KeysFolder)); err != nil {
		return fmt.Errorf("loading keys: %w", err)
	}

	a := auth.New(auth.Config{
		Log:       log,
		KeyLookup: ks,
		Issuer:    cfg.Auth.Issuer,
	})

	token, err := a.GenerateToken(cfg.Auth.ActiveKID, uuid.NewString(), *tenancy, r)
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}

	fmt.Println(token)

	return nil
}
