package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anirudhraja/protolite"
	"github.com/anirudhraja/protolite/internal/testmsg"
	"github.com/anirudhraja/protolite/wire"
	"github.com/anirudhraja/protolite/wrappers"
)

func main() {
	proto := protolite.New()

	fmt.Println("🚀 Protolite Sample App - wire codec, lazy fields and unknown fields")
	fmt.Println(strings.Repeat("=", 70))

	person := &testmsg.Person{
		ID:      wrappers.NewUUIDRef(uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")),
		Name:    "John Doe",
		Age:     29,
		Balance: -1250,
		Scores:  []int32{98, -1, 300},
		Tags:    []string{"go", "protobuf"},
		Attrs:   map[string]int64{"posts": 42, "likes": 1337},
		Home: &testmsg.Address{
			Street: "123 Main St",
			Zip:    94105,
		},
		Created:  wrappers.NewTimestampRef(time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)),
		Ratio:    4.8,
		Flags:    0x5,
		Timeout:  wrappers.NewDurationRef(90 * time.Second),
		Nickname: testmsg.NewNickname("JohnnyDev"),
	}

	data, err := proto.Marshal(person)
	if err != nil {
		log.Fatalf("Failed to marshal person: %v", err)
	}
	fmt.Printf("✅ Encoded Person: %d bytes\n%x\n", len(data), data)

	fields, err := proto.Parse(data)
	if err != nil {
		log.Fatalf("Failed to parse without schema: %v", err)
	}
	fmt.Println("\n📋 Schema-less view:")
	fmt.Print(fields.String())

	decoded, err := protolite.Unmarshal(proto, data, testmsg.DeserializePerson)
	if err != nil {
		log.Fatalf("Failed to unmarshal person: %v", err)
	}
	fmt.Printf("\n🔄 Round trip equal: %v\n", decoded.Equal(person))

	// Wrapped fields stay in wire form until asked for.
	fmt.Println("\n💤 Lazy fields:")
	fmt.Printf("  id decoded yet: %v\n", decoded.ID.IsDomain())
	id, err := decoded.ID.Value()
	if err != nil {
		log.Fatalf("Failed to convert id: %v", err)
	}
	fmt.Printf("  id: %s (decoded now: %v)\n", id, decoded.ID.IsDomain())
	created, err := decoded.Created.Value()
	if err != nil {
		log.Fatalf("Failed to convert created: %v", err)
	}
	fmt.Printf("  created: %s\n", created.Format(time.RFC3339))
	timeout, err := decoded.Timeout.Value()
	if err != nil {
		log.Fatalf("Failed to convert timeout: %v", err)
	}
	fmt.Printf("  timeout: %s\n", timeout)
	nickname, err := decoded.Nickname.Value()
	if err != nil {
		log.Fatalf("Failed to convert nickname: %v", err)
	}
	fmt.Printf("  nickname: %s\n", nickname)

	// A reader that only knows the name keeps the rest as unknown fields.
	fmt.Println("\n🧩 Partial schema:")
	partial, err := protolite.Unmarshal(proto, data, testmsg.DeserializePersonName)
	if err != nil {
		log.Fatalf("Failed to unmarshal name: %v", err)
	}
	fmt.Printf("  name: %s, unknown fields: %v\n", partial.Name, partial.Unknown.FieldNumbers())
	again, err := proto.Marshal(partial)
	if err != nil {
		log.Fatalf("Failed to re-marshal: %v", err)
	}
	fmt.Printf("  re-encoded: %d bytes, same fields: %v\n", len(again), sameFields(proto, data, again))

	// Nesting past the limit is rejected.
	fmt.Println("\n🪆 Recursion limit:")
	for _, depth := range []int{wire.DefaultRecursionLimit, wire.DefaultRecursionLimit + 1} {
		chain, err := proto.Marshal(testmsg.Chain(depth))
		if err != nil {
			log.Fatalf("Failed to marshal chain: %v", err)
		}
		_, err = protolite.Unmarshal(proto, chain, testmsg.DeserializeNode)
		fmt.Printf("  depth %d: err=%v\n", depth, err)
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("🎉 Done")
}

// sameFields compares two encodings by field content; order may differ.
func sameFields(p *protolite.Protolite, a, b []byte) bool {
	x, err := p.Parse(a)
	if err != nil {
		return false
	}
	y, err := p.Parse(b)
	if err != nil {
		return false
	}
	return x.Equal(y)
}
