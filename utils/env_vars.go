package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type EnvValue interface {
	string | bool | int | float64
}

func parseEnvValue[T EnvValue](envVar, stringValue string) T {
	var out T

	switch ptr := any(&out).(type) {
	case *string:
		*ptr = stringValue
	case *bool:
		boolValue, err := strconv.ParseBool(stringValue)
		if err != nil {
			log.Fatalf("environment variable %s is not valid: '%s' cannot be converted to bool", envVar, stringValue)
		}
		*ptr = boolValue
	case *int:
		intValue, err := strconv.Atoi(stringValue)
		if err != nil {
			log.Fatalf("environment variable %s is not valid: '%s' cannot be converted to int", envVar, stringValue)
		}
		*ptr = intValue
	case *float64:
		floatValue, err := strconv.ParseFloat(stringValue, 64)
		if err != nil {
			log.Fatalf("environment variable %s is not valid: '%s' cannot be converted to float", envVar, stringValue)
		}
		*ptr = floatValue
	default:
		panic(fmt.Sprintf("unsupported environment variable type for %s", envVar))
	}

	return out
}

func GetEnv[T EnvValue](envVar string, defaultValue T) T {
	stringValue, ok := os.LookupEnv(envVar)
	if !ok || stringValue == "" {
		return defaultValue
	}
	return parseEnvValue[T](envVar, stringValue)
}
