// Package game implements the mini-poker round.
//
// A is dealt a black or red card with equal probability. A may resign, losing
// 20, or hold. When A holds, B may resign, losing 10 to A, or see. On a seen
// red card A loses 40; on a seen black card A wins 30.
//
// # Basic Usage
//
//	dealer := game.NewDealer(randutil.New(42))
//	engine := game.NewEngine(dealer)
//	outcome := engine.PlayRound(playerA, playerB)
//	fmt.Println(outcome.RewardA)
//
// # Deterministic Testing
//
// Both the card and the players' choices are injectable. FixedDealer always
// deals the same card, and any PlayerA or PlayerB implementation can script
// its actions:
//
//	engine := game.NewEngine(game.FixedDealer(game.Red))
//
// # Protocol
//
// Each round deals a card, asks A to decide on the card, asks B to decide on
// A's action, resolves the payoff and then notifies B before A. B is asked
// even when A resigned unless Options.SkipLearnerOnResign is set.
package game
