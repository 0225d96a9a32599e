// Command bank is the interactive console front end. It owns the
// registries for the lifetime of the process and translates menu choices
// into core operations; all validation happens in the core, the loop only
// prints outcomes and keeps going.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"bankledger/pkg/identity"
	"bankledger/pkg/ledger"
	"bankledger/pkg/logging"
	"bankledger/pkg/money"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const menu = `
========== MENU ==========
[d]  Deposit
[w]  Withdraw
[s]  Statement
[nh] New holder
[na] New account
[la] List accounts
[sa] Switch account
[q]  Quit
> `

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	logger := logging.NewNoOpLogger()
	if os.Getenv("LOG_LEVEL") != "" {
		var err error
		logger, err = logging.NewLoggerFromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
	}
	logging.SetGlobal(logger)

	limits := limitsFromEnv()
	holders := identity.NewRegistry()
	accounts := ledger.NewRegistry(holders, ledger.RegistryConfig{
		Logger: logger,
	})

	fmt.Printf("\nWelcome to the banking ledger. Agency fixed at %s.\n", ledger.DefaultAgency)

	in := bufio.NewScanner(os.Stdin)
	var current *ledger.Account

	for {
		fmt.Print(menu)
		if !in.Scan() {
			fmt.Println("\nGoodbye!")
			return
		}

		switch strings.ToLower(strings.TrimSpace(in.Text())) {
		case "d":
			if current == nil {
				fmt.Println("\nNo active account. Use [sa] to switch or [na] to open one.")
				continue
			}
			amount, err := readAmount(in, "Deposit amount: ")
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			if _, err := current.Deposit(amount); err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Println("Deposit completed.")

		case "w":
			if current == nil {
				fmt.Println("\nNo active account. Use [sa] to switch or [na] to open one.")
				continue
			}
			amount, err := readAmount(in, "Withdrawal amount: ")
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			if _, err := current.Withdraw(ledger.WithdrawalRequest{Amount: amount, Limits: limits}); err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Println("Withdrawal completed.")

		case "s":
			if current == nil {
				fmt.Println("\nNo active account. Use [sa] to switch or [na] to open one.")
				continue
			}
			fmt.Println(current.Statement())

		case "nh":
			name := readLine(in, "Full name: ")
			birth := readLine(in, "Birth date (DD/MM/YYYY): ")
			id := readLine(in, "Identifier (digits, mask accepted): ")
			address := readLine(in, "Address (street, number, district, city/state): ")
			h, err := holders.Register(name, birth, id, address)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("Holder registered: %s (ID %s)\n", h.Name, h.ID)

		case "na":
			id := readLine(in, "Holder identifier: ")
			a, err := accounts.Open(id)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("Account opened: Agency %s | Account %s | Holder ID %s\n",
				a.Agency, ledger.FormatNumber(a.Number), a.HolderID)

		case "la":
			fmt.Println(ledger.RenderAccountList(accounts.List(), holders))

		case "sa":
			if accounts.Len() == 0 {
				fmt.Println("\nThere are no accounts. Open one with [na].")
				continue
			}
			number, err := strconv.Atoi(readLine(in, "Account number (digits only): "))
			if err != nil {
				fmt.Println("Invalid number.")
				continue
			}
			a, err := accounts.Get(number)
			if err != nil {
				fmt.Println("Account not found.")
				continue
			}
			current = a
			name := a.HolderID
			if h, ok := holders.Lookup(a.HolderID); ok {
				name = h.Name
			}
			fmt.Printf("Account %s selected (holder: %s).\n", ledger.FormatNumber(a.Number), name)

		case "q":
			fmt.Println("\nGoodbye!")
			return

		default:
			fmt.Println("Invalid option. Try again.")
		}
	}
}

// readLine prompts and returns one trimmed input line.
func readLine(in *bufio.Scanner, prompt string) string {
	fmt.Print(prompt)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

// readAmount prompts for a monetary amount, accepting "," or "." as the
// decimal separator.
func readAmount(in *bufio.Scanner, prompt string) (decimal.Decimal, error) {
	raw := strings.ReplaceAll(readLine(in, prompt), ",", ".")
	amount, err := money.FromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid numeric value %q", raw)
	}
	return amount, nil
}

// limitsFromEnv builds the withdrawal limits from WITHDRAWAL_LIMIT and
// DAILY_WITHDRAWALS, falling back to the defaults on absence or garbage.
func limitsFromEnv() ledger.LimitsConfig {
	limits := ledger.DefaultLimitsConfig()
	if v := os.Getenv("WITHDRAWAL_LIMIT"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			limits.PerWithdrawal = d
		}
	}
	if v := os.Getenv("DAILY_WITHDRAWALS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limits.DailyWithdrawals = n
		}
	}
	if err := limits.Validate(); err != nil {
		return ledger.DefaultLimitsConfig()
	}
	return limits
}
