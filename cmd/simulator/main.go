package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
)

const simPassword = "simpassword123"

var (
	cities     = []string{"Pune", "Kochi", "Jaipur", "Mysuru", "Delhi", "Goa"}
	lifestyles = []string{"sedentary", "moderate", "active"}
	genders    = []string{"female", "male", "other"}
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// Global flags
	apiURL := "http://localhost:5000"
	if envURL := os.Getenv("API_URL"); envURL != "" {
		apiURL = envURL
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "full":
		fullCmd(apiURL, args)
	case "quiz":
		quizCmd(apiURL, args)
	case "show":
		showCmd(apiURL, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Onboarding Simulator - Development tool for seeding patient profiles

USAGE:
  simulator <command> [options]

COMMANDS:
  full      Register users, save their details and submit a dosha quiz for each
  quiz      Log in as an existing user and submit quiz scores
  show      Log in as an existing user and print the stored profile
  help      Show this help message

ENVIRONMENT:
  API_URL   Backend API URL (default: http://localhost:5000)

EXAMPLES:
  # Seed 5 patients with random details and quiz scores
  simulator full --count=5

  # Seed 3 doctors with details only
  simulator full --count=3 --role=doctor --skip-quiz

  # Submit a tied quiz for an existing user
  simulator quiz --email=me@example.com --password=secret --vata=50 --pitta=50 --kapha=10

  # Print a user's profile
  simulator show --email=me@example.com --password=secret`)
}

func fullCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("full", flag.ExitOnError)
	count := fs.Int("count", 5, "Number of fake users to create")
	role := fs.String("role", "user", "Role for the created users")
	skipQuiz := fs.Bool("skip-quiz", false, "Only save personal details")
	seed := fs.Int64("seed", 0, "Random seed (0 picks one)")
	fs.Parse(args)

	if *count < 1 || *count > 100 {
		fmt.Println("Error: --count must be between 1 and 100")
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	if *seed == 0 {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	client := NewAPIClient(apiURL)

	fmt.Println("=== Onboarding Simulator: Full Flow ===")
	fmt.Println()

	tally := map[string]int{}
	for i := 1; i <= *count; i++ {
		name := fmt.Sprintf("Patient%d", i)
		if *role == "doctor" {
			name = fmt.Sprintf("Doctor%d", i)
		}

		user, token, err := client.RegisterUser(name, *role, simPassword)
		if err != nil {
			fmt.Printf("  [%d/%d] FAILED to create user: %v\n", i, *count, err)
			os.Exit(1)
		}

		details := map[string]interface{}{
			"name":      user.Name,
			"age":       18 + rng.Intn(60),
			"gender":    genders[rng.Intn(len(genders))],
			"city":      cities[rng.Intn(len(cities))],
			"lifestyle": lifestyles[rng.Intn(len(lifestyles))],
		}
		if _, err := client.SaveDetails(token, details); err != nil {
			fmt.Printf("  [%d/%d] FAILED to save details: %v\n", i, *count, err)
			os.Exit(1)
		}

		if *skipQuiz {
			fmt.Printf("  [%d/%d] %s (%s) onboarded\n", i, *count, user.Name, user.Email)
			continue
		}

		profile, err := client.SubmitQuiz(token, randomQuiz(rng))
		if err != nil {
			fmt.Printf("  [%d/%d] FAILED to submit quiz: %v\n", i, *count, err)
			os.Exit(1)
		}

		dominant := "-"
		if profile.DominantDosha != nil {
			dominant = *profile.DominantDosha
		}
		tally[dominant]++
		fmt.Printf("  [%d/%d] %s (%s) dominant: %s\n", i, *count, user.Name, user.Email, dominant)
	}

	fmt.Println()
	fmt.Println("=========================================")
	fmt.Println("  SEEDING COMPLETE")
	fmt.Println("=========================================")
	fmt.Println()
	fmt.Printf("  Password for all users: %s\n", simPassword)
	if !*skipQuiz {
		for _, dosha := range []string{"vata", "pitta", "kapha"} {
			fmt.Printf("  %-6s %d\n", dosha, tally[dosha])
		}
	}
	fmt.Println()
}

func quizCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("quiz", flag.ExitOnError)
	email := fs.String("email", "", "User email (required)")
	password := fs.String("password", "", "User password (required)")
	vata := fs.Float64("vata", 0, "Vata score")
	pitta := fs.Float64("pitta", 0, "Pitta score")
	kapha := fs.Float64("kapha", 0, "Kapha score")
	fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Println("Error: --email and --password are required")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	_, token, err := client.Login(*email, *password)
	if err != nil {
		fmt.Printf("Failed to log in: %v\n", err)
		os.Exit(1)
	}

	profile, err := client.SubmitQuiz(token, Quiz{Vata: *vata, Pitta: *pitta, Kapha: *kapha})
	if err != nil {
		fmt.Printf("Failed to submit quiz: %v\n", err)
		os.Exit(1)
	}

	printProfile(profile)
}

func showCmd(apiURL string, args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	email := fs.String("email", "", "User email (required)")
	password := fs.String("password", "", "User password (required)")
	fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Println("Error: --email and --password are required")
		os.Exit(1)
	}

	client := NewAPIClient(apiURL)

	_, token, err := client.Login(*email, *password)
	if err != nil {
		fmt.Printf("Failed to log in: %v\n", err)
		os.Exit(1)
	}

	profile, err := client.GetProfile(token)
	if err != nil {
		fmt.Printf("Failed to fetch profile: %v\n", err)
		os.Exit(1)
	}

	printProfile(profile)
}

// randomQuiz spreads 100 points across the three doshas
func randomQuiz(rng *rand.Rand) Quiz {
	a, b := rng.Intn(101), rng.Intn(101)
	if a > b {
		a, b = b, a
	}
	return Quiz{Vata: float64(a), Pitta: float64(b - a), Kapha: float64(100 - b)}
}

func printProfile(p *Profile) {
	str := func(s *string) string {
		if s == nil {
			return "-"
		}
		return *s
	}
	num := func(f *float64) string {
		if f == nil {
			return "-"
		}
		return fmt.Sprintf("%g", *f)
	}

	age := "-"
	if p.Age != nil {
		age = fmt.Sprintf("%d", *p.Age)
	}

	fmt.Println()
	fmt.Printf("  Profile:   %s\n", p.ID)
	fmt.Printf("  Name:      %s\n", str(p.Name))
	fmt.Printf("  Age:       %s\n", age)
	fmt.Printf("  Gender:    %s\n", str(p.Gender))
	fmt.Printf("  City:      %s\n", str(p.City))
	fmt.Printf("  Lifestyle: %s\n", str(p.Lifestyle))
	fmt.Printf("  Scores:    vata=%s pitta=%s kapha=%s\n", num(p.VataScore), num(p.PittaScore), num(p.KaphaScore))
	fmt.Printf("  Dominant:  %s\n", str(p.DominantDosha))
	fmt.Println()
}
